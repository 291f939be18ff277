package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/tokoku/storeapi/internal/auth/store"
	"github.com/tokoku/storeapi/pkg/slogx"
)

// DefaultHousekeepingInterval is how often expired reset tokens are swept
// when no interval is configured.
const DefaultHousekeepingInterval = 15 * time.Minute

// Housekeeping periodically removes expired password reset tokens. Expired
// tokens are already invisible to lookups; the sweep just keeps the table
// from growing without bound.
type Housekeeping struct {
	Store    store.Store
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// Start launches the background sweep loop. Call Stop to shut it down.
func (h *Housekeeping) Start(ctx context.Context) {
	if h.Interval <= 0 {
		h.Interval = DefaultHousekeepingInterval
	}
	h.stopCh = make(chan struct{})
	h.doneCh = make(chan struct{})

	go func() {
		defer close(h.doneCh)

		ticker := time.NewTicker(h.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				h.sweep(ctx)
			case <-h.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the loop and waits for the in-flight sweep to finish.
func (h *Housekeeping) Stop() {
	if h.stopCh == nil {
		return
	}
	close(h.stopCh)
	<-h.doneCh
}

func (h *Housekeeping) sweep(ctx context.Context) {
	if err := h.Store.ResetTokens().DeleteExpiredResetTokens(ctx); err != nil {
		slogx.FromContext(ctx).Error("reset token sweep failed",
			slog.Any("error", err),
		)
	}
}
