package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shouni/go-storyboard-kit/pkg/config"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiChatFactory は Gemini クライアントとレートリミッターを共有し、
// セッションごとの GeminiChat を生成します。
type GeminiChatFactory struct {
	cfg     config.Config
	limiter *rate.Limiter

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiChatFactory は設定から GeminiChatFactory を初期化します。
// API キーの検証はメッセージ送信時まで遅延させます。
func NewGeminiChatFactory(cfg config.Config) *GeminiChatFactory {
	var limiter *rate.Limiter
	if cfg.RateInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RateInterval), 1)
	}
	return &GeminiChatFactory{
		cfg:     cfg,
		limiter: limiter,
	}
}

// NewChat は新しい会話を表す Chat を返します。
func (f *GeminiChatFactory) NewChat() Chat {
	return &GeminiChat{factory: f}
}

// genaiClient は共有クライアントを必要になった時点で生成します。
func (f *GeminiChatFactory) genaiClient(ctx context.Context) (*genai.Client, error) {
	if strings.TrimSpace(f.cfg.GeminiAPIKey) == "" {
		return nil, ErrMissingCredentials
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.client != nil {
		return f.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  f.cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: AIクライアントの初期化に失敗しました: %w", ErrTransport, err)
	}
	f.client = client
	return client, nil
}

func (f *GeminiChatFactory) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompts.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    prompts.StoryboardSchema(),
		Temperature:       genai.Ptr(f.cfg.Temperature),
	}
}

// GeminiChat は genai の Chat を1つ保持し、会話の文脈を引き継いで送信します。
type GeminiChat struct {
	factory *GeminiChatFactory

	mu   sync.Mutex
	chat *genai.Chat
}

// SendMessage はメッセージを送信し、構造化出力の JSON テキストを返します。
func (g *GeminiChat) SendMessage(ctx context.Context, message string) (string, error) {
	chat, err := g.session(ctx)
	if err != nil {
		return "", err
	}

	if l := g.factory.limiter; l != nil {
		if err := l.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %w", ErrTransport, err)
		}
	}

	slog.DebugContext(ctx, "Calling Gemini API", "model", g.factory.cfg.GeminiModel)
	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return resp.Text(), nil
}

// session は会話を一度だけ生成して使い回します。生成に失敗した場合は次回の送信で再試行されます。
func (g *GeminiChat) session(ctx context.Context) (*genai.Chat, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.chat != nil {
		return g.chat, nil
	}

	client, err := g.factory.genaiClient(ctx)
	if err != nil {
		return nil, err
	}
	chat, err := client.Chats.Create(ctx, g.factory.cfg.GeminiModel, g.factory.generateConfig(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: チャットの作成に失敗しました: %w", ErrTransport, err)
	}
	g.chat = chat
	return chat, nil
}
