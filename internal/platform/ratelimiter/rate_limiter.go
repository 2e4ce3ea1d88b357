// Package ratelimiter はバックエンドAPIへの呼び出し頻度を固定ウィンドウで制限します。
package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"time"

	"empresas_admin/internal/platform/logger"

	"go.uber.org/zap"
)

// ErrInvalidLimit は上限またはウィンドウ長が正でないときに返されます。
var ErrInvalidLimit = errors.New("ratelimiter: limit and interval must be positive")

// Limiter は呼び出し前に必要なら待機します。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回までの呼び出しを許可します。
// 複数のリクエストから同時に使用できます。
type RateLimiter struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // ウィンドウの長さ

	mu          sync.Mutex
	count       int
	windowStart time.Time
	now         func() time.Time
}

// NewRateLimiter は新しい RateLimiter を生成します。limit と interval は正でなければなりません。
func NewRateLimiter(limit int, interval time.Duration) (*RateLimiter, error) {
	if limit <= 0 || interval <= 0 {
		return nil, ErrInvalidLimit
	}
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
	}, nil
}

// reserve は枠を1つ確保し、確保できるまでの待ち時間と確保時のウィンドウ開始時刻を返します。
func (rl *RateLimiter) reserve() (time.Duration, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if elapsed := now.Sub(rl.windowStart); elapsed >= rl.interval {
		windows := elapsed / rl.interval
		rl.windowStart = rl.windowStart.Add(windows * rl.interval)
		rl.count = 0
	}

	// 上限を超えた分は後続のウィンドウに割り当てる
	slot := rl.count / rl.limit
	rl.count++
	if slot == 0 {
		return 0, rl.windowStart
	}
	return rl.windowStart.Add(time.Duration(slot) * rl.interval).Sub(now), rl.windowStart
}

// release は待機を取りやめた呼び出しの枠を返却します。
// ウィンドウが切り替わっていればカウントはリセット済みなので何もしません。
func (rl *RateLimiter) release(windowStart time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.windowStart.Equal(windowStart) && rl.count > 0 {
		rl.count--
	}
}

// Wait は上限に達していればウィンドウが空くまで待機します。
// 待機中に ctx が終了した場合は確保した枠を返却して ctx.Err() を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	sleep, window := rl.reserve()
	if sleep <= 0 {
		return nil
	}

	logger.FromContext(ctx).Debug("rate limit reached, waiting",
		zap.Int("limit", rl.limit),
		zap.Duration("interval", rl.interval),
		zap.Duration("sleep", sleep),
	)
	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		rl.release(window)
		return ctx.Err()
	}
}

var _ Limiter = (*RateLimiter)(nil)
