package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/parser"
)

// Chat は会話の文脈を保持したままモデルへメッセージを送る契約です。
// 実装は同じ会話のターンを内部で蓄積し、後続のメッセージでも参照させます。
type Chat interface {
	SendMessage(ctx context.Context, message string) (string, error)
}

// State はセッションの状態です。
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

// Event はトランスクリプトに発言が追加された直後に通知される内容です。
// 表示側はこれを受けてトランスクリプトの末尾までスクロールします。
type Event struct {
	Message domain.ChatMessage `json:"message"`
	Length  int                `json:"length"`
}

// Observer は Event を受け取るコールバックです。ブロックしてはいけません。
type Observer func(Event)

// Reply は受理された1ターンの結果です。
type Reply struct {
	User       domain.ChatMessage     `json:"user"`
	Model      domain.ChatMessage     `json:"model"`
	Storyboard *domain.StoryboardIdea `json:"storyboard,omitempty"`
	// Err はモデル呼び出しまたは解析の失敗です。失敗もトランスクリプトに記録済みです。
	Err error `json:"-"`
}

// Snapshot はセッションの現在の状態のコピーです。
type Snapshot struct {
	State      State                  `json:"state"`
	Transcript []domain.ChatMessage   `json:"transcript"`
	Storyboard *domain.StoryboardIdea `json:"storyboard"`
	LastError  string                 `json:"lastError,omitempty"`
}

// Session はストーリーボードアシスタントとの1つの会話です。
type Session struct {
	chat Chat
	busy atomic.Bool

	mu         sync.RWMutex
	transcript domain.Transcript
	storyboard *domain.StoryboardIdea
	lastError  string

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObsID int
}

// NewSession は Chat を注入して Session を初期化します。
func NewSession(chat Chat) (*Session, error) {
	if chat == nil {
		return nil, fmt.Errorf("chat は必須です")
	}
	return &Session{
		chat:      chat,
		observers: make(map[int]Observer),
	}, nil
}

// Subscribe は Observer を登録し、解除用の関数を返します。
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = o
	s.obsMu.Unlock()

	return func() {
		s.obsMu.Lock()
		delete(s.observers, id)
		s.obsMu.Unlock()
	}
}

// Send はユーザーの発言を追加し、モデルに問い合わせて応答を記録します。
// 空のプロンプトと処理中の送信は何も変更せずに ErrEmptyPrompt / ErrBusy を返します。
// モデル側の失敗はエラーとして返さず、トランスクリプトに記録して Reply.Err に格納します。
func (s *Session) Send(ctx context.Context, prompt string) (Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Reply{}, ErrEmptyPrompt
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Reply{}, ErrBusy
	}
	defer s.busy.Store(false)

	user := domain.ChatMessage{Role: domain.RoleUser, Text: prompt}
	s.mu.Lock()
	s.lastError = ""
	n := s.transcript.Append(user.Role, user.Text)
	s.mu.Unlock()
	s.notify(Event{Message: user, Length: n})

	idea, err := s.ask(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "Storyboard turn failed", "error", err)
		model := domain.ChatMessage{Role: domain.RoleModel, Text: HumanMessage(err)}

		s.mu.Lock()
		s.lastError = model.Text
		n = s.transcript.Append(model.Role, model.Text)
		s.mu.Unlock()
		s.notify(Event{Message: model, Length: n})

		return Reply{User: user, Model: model, Err: err}, nil
	}

	model := domain.ChatMessage{Role: domain.RoleModel, Text: idea.ModelResponseText}
	stored := idea.Clone()

	s.mu.Lock()
	s.storyboard = &stored
	n = s.transcript.Append(model.Role, model.Text)
	s.mu.Unlock()
	s.notify(Event{Message: model, Length: n})

	slog.InfoContext(ctx, "Storyboard updated",
		"title", idea.Storyboard.Title,
		"shots", len(idea.Storyboard.ShotList),
	)
	return Reply{User: user, Model: model, Storyboard: &idea}, nil
}

func (s *Session) ask(ctx context.Context, prompt string) (domain.StoryboardIdea, error) {
	text, err := s.chat.SendMessage(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrMissingCredentials) && !errors.Is(err, ErrTransport) {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return domain.StoryboardIdea{}, err
	}
	return parser.ParseStoryboardIdea(text)
}

// State は現在の状態を返します。
func (s *Session) State() State {
	if s.busy.Load() {
		return StateSending
	}
	return StateIdle
}

// Snapshot は現在のトランスクリプトとストーリーボードのコピーを返します。
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		State:      s.State(),
		Transcript: s.transcript.Messages(),
		LastError:  s.lastError,
	}
	if s.storyboard != nil {
		c := s.storyboard.Clone()
		snap.Storyboard = &c
	}
	return snap
}

func (s *Session) notify(e Event) {
	s.obsMu.RLock()
	defer s.obsMu.RUnlock()
	for _, o := range s.observers {
		o(e)
	}
}
