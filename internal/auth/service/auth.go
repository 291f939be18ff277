// Package service implements the credential lifecycle: registration, login,
// token refresh and the password reset flow. It owns the business rules and
// error taxonomy; persistence and delivery are behind the Store, Notifier and
// Limiter collaborators.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tokoku/storeapi/internal/auth/domain"
	"github.com/tokoku/storeapi/internal/auth/limiter"
	"github.com/tokoku/storeapi/internal/auth/notify"
	"github.com/tokoku/storeapi/internal/auth/store"
	"github.com/tokoku/storeapi/pkg/cryptox"
	"github.com/tokoku/storeapi/pkg/idx"
	"github.com/tokoku/storeapi/pkg/jwtx"
	"github.com/tokoku/storeapi/pkg/slogx"
)

const (
	// DefaultResetTokenTTL bounds how long a password reset link stays
	// redeemable.
	DefaultResetTokenTTL = 30 * time.Minute

	// DefaultCallTimeout caps a single service operation end to end,
	// including notifier round trips.
	DefaultCallTimeout = 5 * time.Second
)

// AuthService performs account and token operations against a Store. All
// collaborators must be set before use; Limiter and Notifier may be the noop
// implementations.
type AuthService struct {
	Store    store.Store
	Notifier notify.Notifier
	Limiter  limiter.Limiter

	AccessSigner  *jwtx.Signer
	RefreshSigner *jwtx.Signer

	// HashCost is the bcrypt cost for new password hashes. Zero means
	// cryptox.DefaultCost.
	HashCost int

	// ResetBaseURL is the external base URL reset links are built on,
	// e.g. "https://store.example.com".
	ResetBaseURL string

	// ResetTokenTTL defaults to DefaultResetTokenTTL when zero. Any non-zero
	// value, negative included, is used verbatim.
	ResetTokenTTL time.Duration

	// CallTimeout defaults to DefaultCallTimeout when zero.
	CallTimeout time.Duration
}

// Register creates a new account with the given profile and credentials.
// Returns ErrAlreadyRegistered when the email is already taken and
// ErrInvalidRequest when a required field is empty. The returned account
// carries no credential material.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if name == "" || email == "" || password == "" {
		return domain.Account{}, ErrInvalidRequest
	}

	hash, err := cryptox.HashPassword(password, s.HashCost)
	if err != nil {
		return domain.Account{}, fmt.Errorf("auth: hash password: %w", err)
	}

	acct := domain.Account{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	err = s.Store.Accounts().CreateAccount(ctx, acct)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Account{}, ErrAlreadyRegistered
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("auth: create account: %w", err)
	}

	registrationsTotal.Inc()
	slogx.FromContext(ctx).Info("account registered",
		slog.String("account_id", acct.ID),
	)

	return acct.Redacted(), nil
}

// Login verifies the credentials and issues a fresh access/refresh token
// pair. The refresh token is stored on the account row, replacing whatever
// was there; earlier refresh tokens stop working.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if email == "" || password == "" {
		return domain.Session{}, ErrInvalidRequest
	}

	if err := s.allow(ctx, "login", email); err != nil {
		loginsTotal.WithLabelValues(outcomeThrottled).Inc()
		return domain.Session{}, err
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		loginsTotal.WithLabelValues(outcomeNotFound).Inc()
		return domain.Session{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth: lookup account: %w", err)
	}

	if !cryptox.VerifyPassword(password, acct.PasswordHash) {
		loginsTotal.WithLabelValues(outcomeBadCreds).Inc()
		return domain.Session{}, ErrCredentialMismatch
	}

	access, refresh, err := s.issuePair(acct)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.Store.Accounts().SetRefreshToken(ctx, acct.ID, refresh); err != nil {
		return domain.Session{}, fmt.Errorf("auth: store refresh token: %w", err)
	}

	loginsTotal.WithLabelValues(outcomeSuccess).Inc()
	slogx.FromContext(ctx).Info("login succeeded",
		slog.String("account_id", acct.ID),
	)

	return sessionFor(acct, access, refresh), nil
}

// RefreshToken exchanges a valid stored refresh token for a new token pair.
// The presented token must carry a valid signature, belong to accountID and
// match the token currently on the account row. Rotation is
// compare-and-swap: of two concurrent exchanges of the same token, exactly
// one wins and the other gets ErrInvalidRefresh.
func (s *AuthService) RefreshToken(ctx context.Context, accountID, refreshToken string) (domain.Session, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if accountID == "" || refreshToken == "" {
		return domain.Session{}, ErrInvalidRefresh
	}

	claims, err := s.RefreshSigner.Verify(refreshToken)
	if err != nil || claims.AccountID() != accountID {
		refreshesTotal.WithLabelValues(outcomeRejected).Inc()
		return domain.Session{}, ErrInvalidRefresh
	}

	acct, err := s.Store.Accounts().GetAccountByIDAndRefreshToken(ctx, accountID, refreshToken)
	if errors.Is(err, store.ErrNotFound) {
		refreshesTotal.WithLabelValues(outcomeRejected).Inc()
		return domain.Session{}, ErrInvalidRefresh
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth: lookup refresh token: %w", err)
	}

	access, next, err := s.issuePair(acct)
	if err != nil {
		return domain.Session{}, err
	}

	err = s.Store.Accounts().RotateRefreshToken(ctx, acct.ID, refreshToken, next)
	if errors.Is(err, store.ErrNotFound) {
		// Lost the race to a concurrent exchange of the same token.
		refreshesTotal.WithLabelValues(outcomeRejected).Inc()
		return domain.Session{}, ErrInvalidRefresh
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth: rotate refresh token: %w", err)
	}

	refreshesTotal.WithLabelValues(outcomeSuccess).Inc()
	slogx.FromContext(ctx).Info("refresh token rotated",
		slog.String("account_id", acct.ID),
	)

	return sessionFor(acct, access, next), nil
}

// Profile returns the account's public profile by ID. Credential fields are
// never populated.
func (s *AuthService) Profile(ctx context.Context, accountID string) (domain.Account, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	acct, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("auth: lookup account: %w", err)
	}

	return acct.Redacted(), nil
}

func (s *AuthService) issuePair(acct domain.Account) (access, refresh string, err error) {
	access, err = s.AccessSigner.Issue(acct.ID, acct.Email, acct.Name)
	if err != nil {
		return "", "", fmt.Errorf("auth: sign access token: %w", err)
	}
	refresh, err = s.RefreshSigner.Issue(acct.ID, acct.Email, acct.Name)
	if err != nil {
		return "", "", fmt.Errorf("auth: sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func sessionFor(acct domain.Account, access, refresh string) domain.Session {
	return domain.Session{
		ID:           acct.ID,
		Name:         acct.Name,
		Email:        acct.Email,
		Role:         acct.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

// allow consults the attempt limiter. Infrastructure failures fail open so a
// limiter outage never locks users out.
func (s *AuthService) allow(ctx context.Context, op, key string) error {
	if s.Limiter == nil {
		return nil
	}
	err := s.Limiter.Allow(ctx, op+":"+key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, limiter.ErrRateLimited):
		return ErrTooManyAttempts
	default:
		slogx.FromContext(ctx).Warn("attempt limiter unavailable, failing open",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return nil
	}
}

func (s *AuthService) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
