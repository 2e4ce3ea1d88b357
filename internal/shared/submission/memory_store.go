package submission

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state   State
	outcome *Outcome
	expires time.Time
}

// MemoryStore はプロセス内で状態を保持する Store 実装です。Redis 未設定時に使用します。
// 期限切れのエントリは書き込み時に ttl ごとに一括削除します。
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]memoryEntry
	nextSweep time.Time
	now       func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore は ttl で期限切れになる MemoryStore を作成します。
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

// getLocked は期限切れのエントリを削除したうえで返します。mu を保持して呼ぶこと。
func (s *MemoryStore) getLocked(token string) (memoryEntry, bool) {
	e, ok := s.entries[token]
	if ok && s.now().After(e.expires) {
		delete(s.entries, token)
		return memoryEntry{}, false
	}
	return e, ok
}

// putLocked は期限を更新して保存し、必要なら期限切れのエントリを削除します。mu を保持して呼ぶこと。
func (s *MemoryStore) putLocked(token string, e memoryEntry) {
	now := s.now()
	if !now.Before(s.nextSweep) {
		for k, old := range s.entries {
			if now.After(old.expires) {
				delete(s.entries, k)
			}
		}
		s.nextSweep = now.Add(s.ttl)
	}
	e.expires = now.Add(s.ttl)
	s.entries[token] = e
}

func (s *MemoryStore) Acquire(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.getLocked(token); ok {
		return false, nil
	}
	s.putLocked(token, memoryEntry{state: StateSubmitting})
	return true, nil
}

func (s *MemoryStore) Finish(_ context.Context, token string, out Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(token, memoryEntry{state: StateDone, outcome: &out})
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (State, *Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.getLocked(token)
	if !ok {
		return StateIdle, nil, nil
	}
	if e.outcome == nil {
		return e.state, nil, nil
	}
	out := *e.outcome
	return e.state, &out, nil
}

func (s *MemoryStore) Release(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
