package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tokoku/storeapi/internal/auth/domain"
	"github.com/tokoku/storeapi/pkg/cryptox"
	"github.com/tokoku/storeapi/pkg/idx"
)

func TestHousekeepingSweep(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Register(ctx, "Budi", "budi@example.com", "rahasia123")
	require.NoError(t, err)

	liveRaw, err := cryptox.GenerateResetToken()
	require.NoError(t, err)
	live := domain.ResetToken{
		ID:        idx.New().String(),
		AccountID: acct.ID,
		TokenHash: cryptox.FingerprintToken(liveRaw),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	expired := domain.ResetToken{
		ID:        idx.New().String(),
		AccountID: acct.ID,
		TokenHash: cryptox.FingerprintToken("stale"),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, svc.Store.ResetTokens().CreateResetToken(ctx, live))
	require.NoError(t, svc.Store.ResetTokens().CreateResetToken(ctx, expired))

	h := &Housekeeping{Store: svc.Store}
	h.sweep(ctx)

	// The live token survives the sweep.
	_, err = svc.Store.ResetTokens().GetActiveResetToken(ctx, acct.ID, live.TokenHash)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	svc, _ := newTestService(t)

	h := &Housekeeping{Store: svc.Store, Interval: 10 * time.Millisecond}
	h.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	h.Stop()
}
