package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
)

// maxErrorBody は失敗時に読み込む応答本文の上限です。
const maxErrorBody = 64 << 10

// Doer は HTTP リクエストを送信する契約です。*httpkit.Client と *http.Client が満たします。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Relay はフォーム中継サービスへお問い合わせ内容を転送します。
type Relay struct {
	endpoint string
	client   Doer
}

// NewRelay は送信先エンドポイントと HTTP クライアントを注入して Relay を初期化します。
func NewRelay(endpoint string, client Doer) (*Relay, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("endpoint は必須です")
	}
	if client == nil {
		return nil, fmt.Errorf("client は必須です")
	}
	return &Relay{endpoint: endpoint, client: client}, nil
}

// Submit はフォームを検証し、問題がなければ1回だけ送信して結果を表示状態に変換します。
// 検証に失敗した場合は通信を行いません。
func (r *Relay) Submit(ctx context.Context, form Form) Result {
	if err := form.Validate(); err != nil {
		return Result{State: StateError, Message: MsgIncomplete}
	}

	resp, err := r.post(ctx, form)
	if err != nil {
		slog.ErrorContext(ctx, "Form submission error", "endpoint", r.endpoint, "error", err)
		return Result{State: StateError, Message: MsgUnexpected}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		slog.InfoContext(ctx, "Contact form relayed", "status", resp.StatusCode)
		return Result{State: StateSuccess}
	}

	msg := rejectionMessage(resp.Body)
	slog.WarnContext(ctx, "Contact form rejected", "status", resp.StatusCode, "message", msg)
	return Result{State: StateError, Message: msg}
}

func (r *Relay) post(ctx context.Context, form Form) (*http.Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, field := range []struct{ key, value string }{
		{"name", form.Name},
		{"email", form.Email},
		{"message", form.Message},
	} {
		if err := mw.WriteField(field.key, field.value); err != nil {
			return nil, fmt.Errorf("フォームの組み立てに失敗しました: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("フォームの組み立てに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return r.client.Do(req)
}

// relayErrorBody は中継サービスが返すエラー本文の形です。
type relayErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// rejectionMessage は失敗時の本文に errors 配列があればその message を ", " で連結し、
// なければ既定の文言を返します。
func rejectionMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return MsgRejected
	}

	var parsed relayErrorBody
	if err := json.Unmarshal(data, &parsed); err != nil {
		return MsgRejected
	}

	messages := make([]string, 0, len(parsed.Errors))
	for _, e := range parsed.Errors {
		if m := strings.TrimSpace(e.Message); m != "" {
			messages = append(messages, m)
		}
	}
	if len(messages) == 0 {
		return MsgRejected
	}
	return strings.Join(messages, ", ")
}
