package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/internal/server"

	"github.com/spf13/cobra"
)

// serveCmd はサイトの API サーバーを起動するのだ！
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "スタジオサイトの API サーバーを起動するのだ！",
	Long: `作品ギャラリー、パララックス計算、ストーリーボードアシスタント、
お問い合わせフォームの API を HTTP と WebSocket で提供するのだ。
SIGINT / SIGTERM を受け取るとグレースフルに停止するのだよ。`,
	Example: "  storyboard-kit serve --addr :8080",
	RunE:    serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	if cfg.GeminiAPIKey == "" {
		// アシスタントは会話の中で資格情報エラーを返すので、起動は続けるのだ
		slog.Warn("GEMINI_API_KEY が未設定なのだ。アシスタントは応答できないのだよ")
	}

	app, err := builder.BuildAppContext(cfg)
	if err != nil {
		return fmt.Errorf("依存関係の組み立てに失敗したのだ: %w", err)
	}

	srv, err := server.New(app, config.DefaultShutdownTimeout)
	if err != nil {
		return err
	}

	slog.Info("サーバーを起動するのだ！", "addr", cfg.ListenAddr, "model", cfg.GeminiModel)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("サーバーが異常終了したのだ: %w", err)
	}
	slog.Info("サーバーを停止したのだ")
	return nil
}
