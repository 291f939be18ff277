package store

import (
	"context"
	"errors"

	"github.com/tokoku/storeapi/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface consumed by the auth service.
// Concrete drivers (sqlite today, anything else tomorrow) implement it; the
// service never learns the persistence engine. Sub-repositories keep the
// surface tidy and individually mockable.
type Store interface {
	Accounts() Accounts
	ResetTokens() ResetTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn errors,
	// committed otherwise. Use it for multi-step operations that must be
	// atomic (password reset is a write-then-delete).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByEmail returns the full credential record for an email,
	// including password hash and current refresh token. This is the one read
	// that exposes credential columns; it exists solely for login.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByID is the narrow-projection read: credential columns are
	// never selected, so the result is safe to return outward.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByIDAndRefreshToken returns the account only when both id and
	// the stored refresh token match the same row.
	GetAccountByIDAndRefreshToken(ctx context.Context, id, refreshToken string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by the app via ULID).
	// A duplicate email returns ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, accountID, newHash string) error

	// SetRefreshToken unconditionally overwrites the stored refresh token.
	// Login uses this; every previously issued refresh token dies with it.
	SetRefreshToken(ctx context.Context, accountID, refreshToken string) error

	// RotateRefreshToken swaps old for new only if the stored token still
	// equals old, a compare-and-swap so two concurrent refreshes cannot both
	// win. Returns ErrNotFound when the row no longer matches.
	RotateRefreshToken(ctx context.Context, accountID, oldToken, newToken string) error
}

type ResetTokens interface {
	// CreateResetToken stores a new reset token record (fingerprint only).
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// GetActiveResetToken returns the unexpired token matching both account
	// and fingerprint. Expired or absent rows are ErrNotFound.
	GetActiveResetToken(ctx context.Context, accountID, tokenHash string) (domain.ResetToken, error)

	// DeleteAccountResetTokens removes every reset token for an account.
	// Called on redemption (single-use at the account level) and when a new
	// token supersedes outstanding ones.
	DeleteAccountResetTokens(ctx context.Context, accountID string) error

	// DeleteExpiredResetTokens is housekeeping.
	DeleteExpiredResetTokens(ctx context.Context) error
}
