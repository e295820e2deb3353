package builder

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-http-kit/httpkit"

	"github.com/shouni/go-storyboard-kit/examples"
	"github.com/shouni/go-storyboard-kit/internal/config"

	"github.com/shouni/go-storyboard-kit/pkg/assistant"
	"github.com/shouni/go-storyboard-kit/pkg/contact"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"
)

// BuildAppContext は設定からすべての依存関係を組み立てます。
func BuildAppContext(cfg *config.Config) (AppContext, error) {
	if cfg == nil {
		return AppContext{}, fmt.Errorf("config は必須です")
	}

	catalog, err := InitializeCatalog(cfg.ProjectsFile)
	if err != nil {
		return AppContext{}, err
	}

	relay, err := InitializeRelay(cfg)
	if err != nil {
		return AppContext{}, err
	}

	chats := assistant.NewGeminiChatFactory(cfg.KitConfig())

	return NewAppContext(cfg, catalog, relay, chats), nil
}

// InitializeCatalog は作品カタログを読み込みます。パスが空の場合は同梱のカタログを使います。
func InitializeCatalog(path string) (*gallery.Catalog, error) {
	if path == "" {
		catalog, err := gallery.ParseCatalog(examples.ProjectsTOML)
		if err != nil {
			return nil, fmt.Errorf("同梱カタログの初期化に失敗しました: %w", err)
		}
		return catalog, nil
	}

	slog.Info("作品カタログを読み込んでいます", "path", path)
	catalog, err := gallery.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("カタログの初期化に失敗しました: %w", err)
	}
	return catalog, nil
}

// InitializeRelay はお問い合わせ中継クライアントを初期化します。
func InitializeRelay(cfg *config.Config) (*contact.Relay, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	relay, err := contact.NewRelay(cfg.KitConfig().FormEndpoint, newRelayClient(timeout))
	if err != nil {
		return nil, fmt.Errorf("中継クライアントの初期化に失敗しました: %w", err)
	}
	return relay, nil
}

// newRelayClient は中継サービス用の HTTP クライアントを生成します。
// httpkit の Do はリトライしないため、送信は常に1回だけです。
func newRelayClient(timeout time.Duration) *httpkit.Client {
	return httpkit.New(timeout)
}
