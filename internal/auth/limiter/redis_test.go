package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisLimiter(t *testing.T, maxAttempts int, window time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedis(rdb, maxAttempts, window), mr
}

func TestRedisAllowsUpToBudget(t *testing.T) {
	ctx := context.Background()
	r, _ := newRedisLimiter(t, 3, time.Minute)

	for i := range 3 {
		require.NoError(t, r.Allow(ctx, "login:ana@x.com"), "attempt %d", i+1)
	}

	require.ErrorIs(t, r.Allow(ctx, "login:ana@x.com"), ErrRateLimited)
}

func TestRedisWindowExpiry(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisLimiter(t, 1, time.Minute)

	require.NoError(t, r.Allow(ctx, "k"))
	require.ErrorIs(t, r.Allow(ctx, "k"), ErrRateLimited)

	// Once the window passes, the counter is gone and the budget resets.
	mr.FastForward(2 * time.Minute)
	require.NoError(t, r.Allow(ctx, "k"))
}

func TestRedisUnavailable(t *testing.T) {
	ctx := context.Background()
	r, mr := newRedisLimiter(t, 3, time.Minute)

	mr.Close()

	err := r.Allow(ctx, "k")
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotErrorIs(t, err, ErrRateLimited)
}
