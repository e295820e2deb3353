package assistant

import (
	"errors"

	"github.com/shouni/go-storyboard-kit/pkg/parser"
)

var (
	// ErrEmptyPrompt は空白のみのプロンプトが送信された場合に返されます。トランスクリプトは変化しません。
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrBusy は前のリクエストが処理中の場合に返されます。キューには積みません。
	ErrBusy = errors.New("a storyboard request is already in flight")

	// ErrMissingCredentials は API キーが設定されていない場合のエラーです。
	ErrMissingCredentials = errors.New("GEMINI_API_KEY is not set")
	// ErrTransport はモデル呼び出しの通信・API エラーです。
	ErrTransport = errors.New("storyboard model request failed")
	// ErrMalformedResponse は応答が JSON として不正、またはスキーマ不一致の場合のエラーです。
	ErrMalformedResponse = parser.ErrMalformedResponse
)

const (
	msgMissingCredentials = "AI Assistant is not configured for this environment: GEMINI_API_KEY is not set."
	msgTransport          = "Sorry, I couldn't reach the storyboard model. Please try again in a moment."
	msgFallback           = "Sorry, I encountered an error. Please try rephrasing your request."
)

// HumanMessage はエラーをトランスクリプトに記録する利用者向けの文言に変換します。
func HumanMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return msgMissingCredentials
	case errors.Is(err, ErrTransport):
		return msgTransport
	default:
		return msgFallback
	}
}
