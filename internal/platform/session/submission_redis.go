// Package session はフォーム送信トークンの状態をRedisに保存する Store 実装を提供します。
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"empresas_admin/internal/shared/submission"
)

// record はRedisに保存する値です。
type record struct {
	State   submission.State    `json:"state"`
	Outcome *submission.Outcome `json:"outcome,omitempty"`
}

// SubmissionRedis implements submission.Store using Redis.
// Acquire relies on SETNX so that concurrent requests for one token race on a single key.
type SubmissionRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ submission.Store = (*SubmissionRedis)(nil)

// NewSubmissionRedis creates a new SubmissionRedis instance.
func NewSubmissionRedis(client *redis.Client, prefix string, ttl time.Duration) *SubmissionRedis {
	if prefix == "" {
		prefix = "envio"
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SubmissionRedis{client: client, prefix: prefix, ttl: ttl}
}

func (r *SubmissionRedis) key(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// Acquire sets the token to submitting if no state exists for it.
func (r *SubmissionRedis) Acquire(ctx context.Context, token string) (bool, error) {
	data, err := json.Marshal(record{State: submission.StateSubmitting})
	if err != nil {
		return false, err
	}
	return r.client.SetNX(ctx, r.key(token), data, r.ttl).Result()
}

// Finish stores the outcome and marks the token done.
func (r *SubmissionRedis) Finish(ctx context.Context, token string, out submission.Outcome) error {
	data, err := json.Marshal(record{State: submission.StateDone, Outcome: &out})
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}
	return r.client.Set(ctx, r.key(token), data, r.ttl).Err()
}

// Lookup returns the token state. A missing key means idle.
func (r *SubmissionRedis) Lookup(ctx context.Context, token string) (submission.State, *submission.Outcome, error) {
	data, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return submission.StateIdle, nil, nil
		}
		return submission.StateIdle, nil, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return submission.StateIdle, nil, fmt.Errorf("failed to unmarshal submission state: %w", err)
	}
	return rec.State, rec.Outcome, nil
}

// Release deletes the token state.
func (r *SubmissionRedis) Release(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}
