package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/pkg/contact"

	"github.com/spf13/cobra"
)

var contactForm contact.Form

// contactCmd はお問い合わせフォームを中継サービスへ送信するのだ！
var contactCmd = &cobra.Command{
	Use:     "contact",
	Short:   "お問い合わせフォームを送信するのだ！",
	Example: `  storyboard-kit contact --name Ada --email ada@example.com --message "Let's talk."`,
	RunE:    contactCommand,
}

func init() {
	contactCmd.Flags().StringVar(&contactForm.Name, "name", "", "お名前なのだ。")
	contactCmd.Flags().StringVar(&contactForm.Email, "email", "", "返信先のメールアドレスなのだ。")
	contactCmd.Flags().StringVar(&contactForm.Message, "message", "", "メッセージ本文なのだ。")
}

func contactCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	relay, err := builder.InitializeRelay(cfg)
	if err != nil {
		return err
	}

	slog.Debug("お問い合わせを送信するのだ", "endpoint", cfg.FormEndpoint)
	res := relay.Submit(cmd.Context(), contactForm)
	if res.State != contact.StateSuccess {
		return fmt.Errorf("送信に失敗したのだ: %s", res.Message)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Thanks! Your message has been sent.")
	return nil
}
