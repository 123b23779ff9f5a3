package ratelimit

import (
	"context"
	"sync"
	"time"
)

type attemptEntry struct {
	member string
	at     time.Time
}

// MemoryStore は試行枠をプロセス内メモリに保持する Store 実装です。
// 予約の判定と記録は同一ロック内で行うため、同一アドレスからの
// 同時バーストでも数え漏れは発生しません。
type MemoryStore struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	attempts map[string][]attemptEntry

	// テストから時刻を差し替えるためのフック
	now func() time.Time
}

// NewMemoryStore は MemoryStore を作成します。
func NewMemoryStore(limit int, window time.Duration) *MemoryStore {
	return &MemoryStore{
		limit:    limit,
		window:   window,
		attempts: make(map[string][]attemptEntry),
		now:      time.Now,
	}
}

// Reserve はウィンドウ外の試行を破棄し、上限未満であれば1枠を予約します。
func (s *MemoryStore) Reserve(ctx context.Context, key, member string) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)

	kept := s.attempts[key][:0]
	for _, e := range s.attempts[key] {
		if e.at.After(cutoff) {
			kept = append(kept, e)
		}
	}

	if len(kept) >= s.limit {
		s.attempts[key] = kept
		retryAfter := kept[0].at.Add(s.window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return false, retryAfter, nil
	}

	s.attempts[key] = append(kept, attemptEntry{member: member, at: now})
	return true, 0, nil
}

// Forgive は member で指定された予約枠を取り消します。
func (s *MemoryStore) Forgive(ctx context.Context, key, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.attempts[key]
	for i, e := range entries {
		if e.member == member {
			s.attempts[key] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	if len(s.attempts[key]) == 0 {
		delete(s.attempts, key)
	}
	return nil
}
