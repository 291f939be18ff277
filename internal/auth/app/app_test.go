package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Issuer:               "storeapi-test",
		AccessSecret:         "test-access-secret",
		RefreshSecret:        "test-refresh-secret",
		AccessTokenTTL:       time.Hour,
		RefreshTokenTTL:      2 * time.Hour,
		BcryptCost:           bcrypt.MinCost,
		ResetBaseURL:         "https://store.example.com",
		DatabaseFile:         filepath.Join(t.TempDir(), "auth.db"),
		LimiterBackend:       "off",
		HousekeepingInterval: time.Hour,
	}
}

func TestApplicationWiring(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	ctx := context.Background()
	require.NoError(t, app.Store().Ping(ctx))

	// End to end through the wired stack: migrations applied, signers built.
	acct, err := app.Auth().Register(ctx, "Budi", "budi@example.com", "rahasia123")
	require.NoError(t, err)

	sess, err := app.Auth().Login(ctx, "budi@example.com", "rahasia123")
	require.NoError(t, err)
	require.Equal(t, acct.ID, sess.ID)

	app.StartHousekeeping(ctx)
}

func TestApplicationRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.RefreshSecret = cfg.AccessSecret

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrSharedSecret)
}
