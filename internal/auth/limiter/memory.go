package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory is an in-process keyed limiter backed by token buckets. Suitable
// for a single-replica deployment; budgets are not shared across processes.
type Memory struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

// NewMemory allows maxAttempts per window for each key, with the full budget
// available as a burst.
func NewMemory(maxAttempts int, window time.Duration) *Memory {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = time.Minute
	}

	return &Memory{
		rate:        rate.Limit(float64(maxAttempts) / window.Seconds()),
		burst:       maxAttempts,
		lastCleanup: time.Now(),
	}
}

func (m *Memory) Allow(ctx context.Context, key string) error {
	if !m.getLimiter(key).Allow() {
		return ErrRateLimited
	}
	return nil
}

func (m *Memory) getLimiter(key string) *rate.Limiter {
	// Fast path: limiter already exists
	if l, ok := m.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}

	l := rate.NewLimiter(m.rate, m.burst)
	actual, _ := m.limiters.LoadOrStore(key, l)

	m.maybeCleanup()

	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters that have refilled completely, so ephemeral
// keys (one-off emails) don't accumulate forever.
func (m *Memory) maybeCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if time.Since(m.lastCleanup) < 5*time.Minute {
		return
	}
	m.lastCleanup = time.Now()

	m.limiters.Range(func(key, value any) bool {
		// A full bucket means the key has been idle for at least a window.
		if value.(*rate.Limiter).Tokens() >= float64(m.burst) {
			m.limiters.Delete(key)
		}
		return true
	})
}
