// Package limiter throttles credential-guessing attempts against Login and
// ForgotPassword. Keys are caller-chosen (operation + email); backends are
// in-process or redis depending on how many replicas share the budget.
package limiter

import (
	"context"
	"errors"
)

var (
	// ErrRateLimited reports an exhausted attempt budget for a key.
	ErrRateLimited = errors.New("limiter: rate limited")

	// ErrUnavailable reports a backend infrastructure failure, distinct from
	// a limit decision so callers can choose to fail open.
	ErrUnavailable = errors.New("limiter: backend unavailable")
)

// Limiter grants or denies one attempt for a key.
type Limiter interface {
	// Allow consumes one attempt. It returns nil when the attempt may
	// proceed, ErrRateLimited when the budget for key is exhausted, or an
	// ErrUnavailable-wrapped error when the backend cannot decide.
	Allow(ctx context.Context, key string) error
}

// Noop never limits. Used when throttling is disabled by configuration.
type Noop struct{}

func (Noop) Allow(ctx context.Context, key string) error { return nil }
