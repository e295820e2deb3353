package contact

import (
	"errors"
	"strings"
)

// State はお問い合わせフォームの表示状態です。
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// 利用者に表示する文言
const (
	MsgIncomplete = "Please fill out all fields."
	MsgRejected   = "Sorry, there was a problem sending your message."
	MsgUnexpected = "An unexpected error occurred. Please try again later."
)

// ErrIncompleteForm は必須項目のいずれかが空の場合のエラーです。
var ErrIncompleteForm = errors.New("contact form is incomplete")

// Form はお問い合わせフォームの入力内容です。
type Form struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Validate は3つの必須項目がすべて入力されているかを検証します。
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.Email) == "" ||
		strings.TrimSpace(f.Message) == "" {
		return ErrIncompleteForm
	}
	return nil
}

// Result は1回の送信の結果です。
type Result struct {
	State   State  `json:"state"`
	Message string `json:"message,omitempty"`
}
