// Package cache は一覧画面のスナップショットを保持するストアを提供します。
//
// スナップショットは最後に取得した一覧の使い捨てコピーで、ビューID（UUID）で参照されます。
// 削除後の再描画は再取得せずスナップショットから行います。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 30 * time.Minute
	// updateRetries は楽観ロックが競合したときの再試行回数です。
	updateRetries = 5
)

// RedisSnapshots stores snapshots of type T as JSON values in Redis.
type RedisSnapshots[T any] struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	newID     func() string
}

// NewRedisSnapshots creates a Redis-backed snapshot store.
// If ttl is 0, it defaults to 30 minutes. If namespace is empty, it uses "vista".
func NewRedisSnapshots[T any](rdb *redis.Client, ttl time.Duration, namespace string) *RedisSnapshots[T] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = "vista"
	}
	return &RedisSnapshots[T]{rdb: rdb, ttl: ttl, namespace: namespace, newID: uuid.NewString}
}

// Save stores v under a new view id and returns the id.
func (s *RedisSnapshots[T]) Save(ctx context.Context, v T) (string, error) {
	id := s.newID()
	if err := s.Replace(ctx, id, v); err != nil {
		return "", err
	}
	return id, nil
}

// Load returns the snapshot for id. ok is false when it expired or never existed.
func (s *RedisSnapshots[T]) Load(ctx context.Context, id string) (T, bool, error) {
	var out T
	key := s.key(id)

	b, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return out, false, nil
		}
		return out, false, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		// 破損したエントリは削除して未保存として扱う
		_ = s.rdb.Del(ctx, key).Err()
		var zero T
		return zero, false, nil
	}
	return out, true, nil
}

// Replace overwrites the snapshot for id and refreshes its TTL.
func (s *RedisSnapshots[T]) Replace(ctx context.Context, id string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.rdb.Set(ctx, s.key(id), b, s.ttl).Err()
}

// Update applies fn to the snapshot for id under WATCH/MULTI and refreshes its TTL.
// A concurrent write to the same key retries the read-modify-write.
// It reports false without calling fn when the snapshot expired or never existed.
func (s *RedisSnapshots[T]) Update(ctx context.Context, id string, fn func(*T)) (bool, error) {
	key := s.key(id)
	for i := 0; i < updateRetries; i++ {
		found := false
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			b, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return nil
				}
				return err
			}
			var v T
			if err := json.Unmarshal(b, &v); err != nil {
				return nil
			}
			fn(&v)
			out, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}
			found = true
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, out, s.ttl)
				return nil
			})
			return err
		}, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, err
		}
		return found, nil
	}
	return false, fmt.Errorf("update snapshot %s: %w", id, redis.TxFailedErr)
}

// Delete removes the snapshot for id.
func (s *RedisSnapshots[T]) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func (s *RedisSnapshots[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", s.namespace, safe(id))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
