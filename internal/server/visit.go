package server

import (
	"context"
	"sync"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/assistant"
	"github.com/shouni/go-storyboard-kit/pkg/contact"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"
)

// Visit は1回のページ表示に対応する状態で、表示側はこれを読み書きするだけです。
type Visit struct {
	ID        string
	CreatedAt time.Time
	Chat      *assistant.Session
	Gallery   *gallery.Selection

	mu      sync.Mutex
	contact contact.Result
}

func newVisit(id string, chat *assistant.Session) *Visit {
	return &Visit{
		ID:        id,
		CreatedAt: time.Now(),
		Chat:      chat,
		Gallery:   gallery.NewSelection(),
		contact:   contact.Result{State: contact.StateIdle},
	}
}

// ContactState はお問い合わせフォームの現在の表示状態を返します。
func (v *Visit) ContactState() contact.Result {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.contact
}

// SubmitContact は送信中の状態を経てフォームを送信し、結果を記録します。
func (v *Visit) SubmitContact(ctx context.Context, relay *contact.Relay, form contact.Form) contact.Result {
	v.mu.Lock()
	v.contact = contact.Result{State: contact.StateSubmitting}
	v.mu.Unlock()

	res := relay.Submit(ctx, form)

	v.mu.Lock()
	v.contact = res
	v.mu.Unlock()
	return res
}

// VisitView は Visit の JSON 表現です。
type VisitView struct {
	SessionID        string             `json:"sessionId"`
	Chat             assistant.Snapshot `json:"chat"`
	SelectedCategory string             `json:"selectedCategory"`
	Contact          contact.Result     `json:"contact"`
}

// View は現在の状態のコピーを返します。
func (v *Visit) View() VisitView {
	return VisitView{
		SessionID:        v.ID,
		Chat:             v.Chat.Snapshot(),
		SelectedCategory: v.Gallery.Current(),
		Contact:          v.ContactState(),
	}
}
