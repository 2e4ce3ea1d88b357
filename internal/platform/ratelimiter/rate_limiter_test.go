package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock は now を固定した RateLimiter を返します。
func fixedClock(t *testing.T, limit int, interval time.Duration, at time.Time) *RateLimiter {
	t.Helper()
	rl, err := NewRateLimiter(limit, interval)
	require.NoError(t, err)
	rl.windowStart = at
	rl.now = func() time.Time { return at }
	return rl
}

func TestRateLimiter_ReserveWithinLimit(t *testing.T) {
	t.Parallel()

	rl := fixedClock(t, 3, time.Minute, time.Unix(1000, 0))
	for i := 0; i < 3; i++ {
		sleep, _ := rl.reserve()
		assert.Zero(t, sleep, "call %d", i)
	}
}

func TestRateLimiter_ReserveOverLimitWaitsForNextWindow(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	rl := fixedClock(t, 2, time.Minute, start)
	rl.now = func() time.Time { return start.Add(10 * time.Second) }

	for _, want := range []time.Duration{0, 0, 50 * time.Second, 50 * time.Second, 110 * time.Second} {
		sleep, _ := rl.reserve()
		assert.Equal(t, want, sleep)
	}
}

func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	rl := fixedClock(t, 1, time.Minute, start)
	sleep, _ := rl.reserve()
	assert.Zero(t, sleep)

	rl.now = func() time.Time { return start.Add(61 * time.Second) }
	sleep, _ = rl.reserve()
	assert.Zero(t, sleep)
	assert.Equal(t, start.Add(time.Minute), rl.windowStart)
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	rl, err := NewRateLimiter(1, time.Hour)
	require.NoError(t, err)
	assert.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

func TestNewRateLimiter_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		limit    int
		interval time.Duration
	}{
		{"zero limit", 0, time.Minute},
		{"negative limit", -1, time.Minute},
		{"zero interval", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl, err := NewRateLimiter(tt.limit, tt.interval)
			assert.ErrorIs(t, err, ErrInvalidLimit)
			assert.Nil(t, rl)
		})
	}
}

// TestRateLimiter_CancelledWaitReleasesSlot は待機を取りやめた呼び出しの枠が次の呼び出しに回ることを検証します。
func TestRateLimiter_CancelledWaitReleasesSlot(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	rl := fixedClock(t, 1, time.Hour, start)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.Canceled)
	assert.Equal(t, 1, rl.count)

	// 返却された枠は次のウィンドウの先頭に割り当てられる
	sleep, _ := rl.reserve()
	assert.Equal(t, time.Hour, sleep)
}

func TestRateLimiter_ReleaseIgnoresStaleWindow(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	rl := fixedClock(t, 1, time.Minute, start)
	_, window := rl.reserve()

	rl.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, _ = rl.reserve()
	rl.release(window)
	assert.Equal(t, 1, rl.count)
}
