package builder

import (
	"github.com/shouni/go-storyboard-kit/internal/config"

	"github.com/shouni/go-storyboard-kit/pkg/assistant"
	"github.com/shouni/go-storyboard-kit/pkg/contact"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各コマンドやサーバーに渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config  *config.Config               // Configは、環境変数とフラグから組み立てた設定です（APIキー、待ち受けアドレスなど）。
	Catalog *gallery.Catalog             // Catalogは、ギャラリーに表示する作品一覧です。
	Relay   *contact.Relay               // Relayは、お問い合わせフォームの中継クライアントです。
	Chats   *assistant.GeminiChatFactory // Chatsは、セッションごとの Gemini チャットを生成します。
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	catalog *gallery.Catalog,
	relay *contact.Relay,
	chats *assistant.GeminiChatFactory,
) AppContext {
	return AppContext{
		Config:  cfg,
		Catalog: catalog,
		Relay:   relay,
		Chats:   chats,
	}
}

// NewSession は新しいチャットセッションを生成します。
func (a AppContext) NewSession() (*assistant.Session, error) {
	return assistant.NewSession(a.Chats.NewChat())
}
