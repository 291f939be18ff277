package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tokoku/storeapi/internal/auth/domain"
	"github.com/tokoku/storeapi/internal/auth/store"
	"github.com/tokoku/storeapi/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testAccount() domain.Account {
	return domain.Account{
		ID:           idx.New().String(),
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
	}
}

func TestCreateAndGetAccount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	require.NoError(t, s.Accounts().CreateAccount(ctx, acct))

	got, err := s.Accounts().GetAccountByEmail(ctx, acct.Email)
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)
	require.Empty(t, got.RefreshToken)
	require.False(t, got.CreatedAt.IsZero())
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	require.NoError(t, s.Accounts().CreateAccount(ctx, acct))

	dup := testAccount()
	dup.ID = idx.New().String()
	err := s.Accounts().CreateAccount(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetAccountByIDNarrowProjection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	require.NoError(t, s.Accounts().CreateAccount(ctx, acct))
	require.NoError(t, s.Accounts().SetRefreshToken(ctx, acct.ID, "rt-1"))

	got, err := s.Accounts().GetAccountByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, acct.Email, got.Email)
	require.Empty(t, got.PasswordHash, "profile reads must not expose the hash")
	require.Empty(t, got.RefreshToken, "profile reads must not expose the refresh token")
}

func TestGetAccountNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Accounts().GetAccountByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Accounts().GetAccountByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetAccountByIDAndRefreshToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	require.NoError(t, s.Accounts().CreateAccount(ctx, acct))
	require.NoError(t, s.Accounts().SetRefreshToken(ctx, acct.ID, "rt-1"))

	got, err := s.Accounts().GetAccountByIDAndRefreshToken(ctx, acct.ID, "rt-1")
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)

	// Both columns must match the same row.
	_, err = s.Accounts().GetAccountByIDAndRefreshToken(ctx, acct.ID, "rt-2")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRotateRefreshTokenCAS(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	require.NoError(t, s.Accounts().CreateAccount(ctx, acct))
	require.NoError(t, s.Accounts().SetRefreshToken(ctx, acct.ID, "rt-1"))

	// First rotation wins.
	require.NoError(t, s.Accounts().RotateRefreshToken(ctx, acct.ID, "rt-1", "rt-2"))

	// Second rotation with the stale token loses deterministically.
	err := s.Accounts().RotateRefreshToken(ctx, acct.ID, "rt-1", "rt-3")
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Accounts().GetAccountByIDAndRefreshToken(ctx, acct.ID, "rt-2")
	require.NoError(t, err)
	require.Equal(t, "rt-2", got.RefreshToken)
}

func TestUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	require.NoError(t, s.Accounts().CreateAccount(ctx, acct))

	require.NoError(t, s.Accounts().UpdatePasswordHash(ctx, acct.ID, "new-hash"))

	got, err := s.Accounts().GetAccountByEmail(ctx, acct.Email)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	err = s.Accounts().UpdatePasswordHash(ctx, "missing", "x")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	acct := testAccount()
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().CreateAccount(ctx, acct); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Accounts().GetAccountByEmail(ctx, acct.Email)
	require.ErrorIs(t, err, store.ErrNotFound)
}
