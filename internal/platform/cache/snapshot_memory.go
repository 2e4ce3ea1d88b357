package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memorySnapshot struct {
	data    []byte
	expires time.Time
}

// MemorySnapshots stores snapshots in process. Values are kept as JSON so that
// callers never share slices with the stored copy.
// Expired entries are swept on write at most once per ttl.
type MemorySnapshots[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]memorySnapshot
	nextSweep time.Time
	now       func() time.Time
	newID     func() string
}

// NewMemorySnapshots creates an in-process snapshot store.
func NewMemorySnapshots[T any](ttl time.Duration) *MemorySnapshots[T] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemorySnapshots[T]{
		ttl:     ttl,
		entries: make(map[string]memorySnapshot),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *MemorySnapshots[T]) Save(ctx context.Context, v T) (string, error) {
	id := s.newID()
	if err := s.Replace(ctx, id, v); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemorySnapshots[T]) Load(_ context.Context, id string) (T, bool, error) {
	var out T
	s.mu.Lock()
	e, ok := s.getLocked(id)
	s.mu.Unlock()
	if !ok {
		return out, false, nil
	}
	if err := json.Unmarshal(e.data, &out); err != nil {
		return out, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return out, true, nil
}

func (s *MemorySnapshots[T]) Replace(_ context.Context, id string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(id, b)
	return nil
}

// Update applies fn to the stored snapshot while holding the lock.
// It reports false without calling fn when the snapshot expired or never existed.
func (s *MemorySnapshots[T]) Update(_ context.Context, id string, fn func(*T)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLocked(id)
	if !ok {
		return false, nil
	}
	var v T
	if err := json.Unmarshal(e.data, &v); err != nil {
		return false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	fn(&v)
	b, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("marshal snapshot: %w", err)
	}
	s.putLocked(id, b)
	return true, nil
}

func (s *MemorySnapshots[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// getLocked drops id when it has expired. Callers hold mu.
func (s *MemorySnapshots[T]) getLocked(id string) (memorySnapshot, bool) {
	e, ok := s.entries[id]
	if ok && s.now().After(e.expires) {
		delete(s.entries, id)
		return memorySnapshot{}, false
	}
	return e, ok
}

// putLocked stores b with a fresh expiry and sweeps when due. Callers hold mu.
func (s *MemorySnapshots[T]) putLocked(id string, b []byte) {
	now := s.now()
	if !now.Before(s.nextSweep) {
		for k, e := range s.entries {
			if now.After(e.expires) {
				delete(s.entries, k)
			}
		}
		s.nextSweep = now.Add(s.ttl)
	}
	s.entries[id] = memorySnapshot{data: b, expires: now.Add(s.ttl)}
}
