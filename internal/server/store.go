package server

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-storyboard-kit/pkg/assistant"
)

// ErrInvalidSessionID はセッション ID が UUID 形式でない場合のエラーです。
var ErrInvalidSessionID = errors.New("invalid session id")

// SessionFactory は新しいチャットセッションを生成します。
type SessionFactory func() (*assistant.Session, error)

// Store はページ表示ごとの Visit をメモリ上に TTL 付きで保持します。永続化はしません。
type Store struct {
	cache       *cache.Cache
	ttl         time.Duration
	newSession  SessionFactory
	createGroup singleflight.Group
}

// NewStore は TTL とセッション生成関数を注入して Store を初期化します。
func NewStore(ttl time.Duration, newSession SessionFactory) (*Store, error) {
	if newSession == nil {
		return nil, fmt.Errorf("newSession は必須です")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl は正の値である必要があります: %v", ttl)
	}

	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, _ interface{}) {
		slog.Debug("Session evicted", "session_id", id)
	})

	return &Store{
		cache:      c,
		ttl:        ttl,
		newSession: newSession,
	}, nil
}

// Create は新しい ID で Visit を生成します。
func (s *Store) Create() (*Visit, error) {
	return s.GetOrCreate(uuid.NewString())
}

// GetOrCreate は ID に対応する Visit を返し、なければ生成します。
// 同じ ID に対する同時の生成要求は1つにまとめます。
func (s *Store) GetOrCreate(id string) (*Visit, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	if v, ok := s.Get(id); ok {
		return v, nil
	}

	val, err, _ := s.createGroup.Do(id, func() (interface{}, error) {
		// singleflight で待機中に他のゴルーチンが生成を完了させている可能性があるため再確認する
		if v, ok := s.Get(id); ok {
			return v, nil
		}

		chat, err := s.newSession()
		if err != nil {
			return nil, fmt.Errorf("チャットセッションの生成に失敗しました: %w", err)
		}
		v := newVisit(id, chat)
		s.cache.SetDefault(id, v)
		slog.Info("Session created", "session_id", id)
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	v, ok := val.(*Visit)
	if !ok {
		return nil, fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return v, nil
}

// Get は Visit を返し、有効期限を延長します。削除済みなら false を返します。
func (s *Store) Get(id string) (*Visit, bool) {
	val, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	v, ok := val.(*Visit)
	if !ok {
		return nil, false
	}
	// Replace は削除済みのキーでは失敗するため、Delete と競合しても Visit は復活しない
	if err := s.cache.Replace(id, v, cache.DefaultExpiration); err != nil {
		return nil, false
	}
	return v, true
}

// Delete は Visit を破棄します。
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len は保持している Visit の数を返します。
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
