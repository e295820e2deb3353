package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/pkg/assistant"
	"github.com/shouni/go-storyboard-kit/pkg/domain"

	"github.com/spf13/cobra"
)

var chatPrompt string

// chatCmd は端末でストーリーボードアシスタントと会話するのだ！
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "端末でストーリーボードアシスタントと会話するのだ！",
	Long: `動画のアイデアを伝えると、Gemini がタイトル・ログライン・ショットリストを提案するのだ。
続けて話しかけると、直前のストーリーボードを踏まえて修正してくれるのだよ。
空行は無視され、/quit か EOF で終了するのだ。`,
	Example: `  storyboard-kit chat
  storyboard-kit chat -p "30秒のポッドキャスト予告編"`,
	RunE: chatCommand,
}

func init() {
	chatCmd.Flags().StringVarP(&chatPrompt, "prompt", "p", "", "1回だけ送信して終了するプロンプトなのだ。")
}

func chatCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	app, err := builder.BuildAppContext(cfg)
	if err != nil {
		return fmt.Errorf("依存関係の組み立てに失敗したのだ: %w", err)
	}
	session, err := app.NewSession()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if chatPrompt != "" {
		return chatTurn(cmd, session, out, chatPrompt)
	}
	return chatLoop(cmd, session, cmd.InOrStdin(), out)
}

// chatLoop は入力を1行ずつアシスタントに送るのだ。
func chatLoop(cmd *cobra.Command, session *assistant.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" {
			break
		}
		if err := chatTurn(cmd, session, out, line); err != nil {
			return err
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// chatTurn は1ターン分の送信と表示を行うのだ。空のプロンプトは何もしないのだよ。
func chatTurn(cmd *cobra.Command, session *assistant.Session, out io.Writer, prompt string) error {
	reply, err := session.Send(cmd.Context(), prompt)
	switch {
	case errors.Is(err, assistant.ErrEmptyPrompt):
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "\n%s\n\n", reply.Model.Text)
	if reply.Storyboard != nil {
		fmt.Fprintln(out, renderStoryboard(*reply.Storyboard))
	}
	return nil
}

// renderStoryboard はストーリーボードを見出しとショット表にするのだ。
func renderStoryboard(idea domain.StoryboardIdea) string {
	sb := idea.Storyboard

	rows := make([][]string, 0, len(sb.ShotList))
	for _, shot := range sb.ShotList {
		rows = append(rows, []string{strconv.Itoa(shot.ShotNumber), shot.CameraAngle, shot.Description})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", sb.Title, sb.Logline)
	b.WriteString(renderTable(shotColumns, rows))
	return b.String()
}
