package gallery

import (
	"fmt"
	"sync"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// Selection は現在選択中のカテゴリを保持します。初期値は All です。
type Selection struct {
	mu       sync.RWMutex
	selected string
}

// NewSelection は All を選択した状態の Selection を返します。
func NewSelection() *Selection {
	return &Selection{selected: All}
}

// Current は選択中のカテゴリを返します。
func (s *Selection) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select はカテゴリを切り替えます。すでに選択中の場合は何もせず false を返します。
func (s *Selection) Select(category string) (bool, error) {
	if category != All && !domain.Category(category).Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == category {
		return false, nil
	}
	s.selected = category
	return true, nil
}
