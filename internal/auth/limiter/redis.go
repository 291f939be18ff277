package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "authlim:"

// Redis is a fixed-window keyed limiter sharing one attempt budget across
// every replica of the backend. Each key gets an INCR counter that expires
// after the window.
type Redis struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
}

func NewRedis(rdb *redis.Client, maxAttempts int, window time.Duration) *Redis {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = time.Minute
	}

	return &Redis{rdb: rdb, max: int64(maxAttempts), window: window}
}

func (r *Redis) Allow(ctx context.Context, key string) error {
	k := redisKeyPrefix + key

	count, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// First attempt in a window owns setting the expiry.
	if count == 1 {
		if err := r.rdb.Expire(ctx, k, r.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if count > r.max {
		return ErrRateLimited
	}

	return nil
}
