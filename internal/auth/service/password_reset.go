package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tokoku/storeapi/internal/auth/domain"
	"github.com/tokoku/storeapi/internal/auth/store"
	"github.com/tokoku/storeapi/pkg/cryptox"
	"github.com/tokoku/storeapi/pkg/idx"
	"github.com/tokoku/storeapi/pkg/slogx"
)

// ForgotPassword mints a single-use reset token for the account behind email
// and hands the reset link to the Notifier. Only a fingerprint of the token
// is persisted; the raw token exists solely inside the link. Requesting a
// new token invalidates any outstanding ones for the same account.
//
// The token row is written before the notifier is called. If delivery fails
// the row is cleaned up again so no orphaned token stays redeemable, and the
// failure is returned to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if email == "" {
		return ErrInvalidRequest
	}

	if err := s.allow(ctx, "forgot", email); err != nil {
		return err
	}

	acct, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("auth: lookup account: %w", err)
	}

	raw, err := cryptox.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("auth: generate reset token: %w", err)
	}

	token := domain.ResetToken{
		ID:        idx.New().String(),
		AccountID: acct.ID,
		TokenHash: cryptox.FingerprintToken(raw),
		ExpiresAt: time.Now().UTC().Add(s.resetTokenTTL()),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().DeleteAccountResetTokens(ctx, acct.ID); err != nil {
			return err
		}
		return tx.ResetTokens().CreateResetToken(ctx, token)
	})
	if err != nil {
		return fmt.Errorf("auth: store reset token: %w", err)
	}

	link := s.resetLink(acct.ID, raw)
	if err := s.Notifier.SendPasswordReset(ctx, acct.Email, acct.Name, link); err != nil {
		// Roll the token back; a link nobody received must not stay live.
		if cerr := s.Store.ResetTokens().DeleteAccountResetTokens(ctx, acct.ID); cerr != nil {
			slogx.FromContext(ctx).Error("failed to clean up undelivered reset token",
				slog.String("account_id", acct.ID),
				slog.Any("error", cerr),
			)
		}
		return fmt.Errorf("auth: send reset notification: %w", err)
	}

	passwordResetsTotal.WithLabelValues(stageRequested).Inc()
	slogx.FromContext(ctx).Info("password reset requested",
		slog.String("account_id", acct.ID),
	)

	return nil
}

// ResetPassword redeems a reset token and installs the new password. The
// token must be unexpired and belong to accountID. On success every
// outstanding reset token for the account is consumed, so a token redeems at
// most once.
func (s *AuthService) ResetPassword(ctx context.Context, accountID, token, newPassword string) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if accountID == "" || token == "" {
		return ErrInvalidResetToken
	}
	if newPassword == "" {
		return ErrInvalidRequest
	}

	_, err := s.Store.ResetTokens().GetActiveResetToken(ctx, accountID, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("auth: lookup reset token: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword, s.HashCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdatePasswordHash(ctx, accountID, hash); err != nil {
			return err
		}
		return tx.ResetTokens().DeleteAccountResetTokens(ctx, accountID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("auth: apply password reset: %w", err)
	}

	passwordResetsTotal.WithLabelValues(stageCompleted).Inc()
	slogx.FromContext(ctx).Info("password reset completed",
		slog.String("account_id", accountID),
	)

	return nil
}

func (s *AuthService) resetLink(accountID, rawToken string) string {
	base := strings.TrimRight(s.ResetBaseURL, "/")
	return fmt.Sprintf("%s/auth/reset-password/%s/%s", base, accountID, rawToken)
}

func (s *AuthService) resetTokenTTL() time.Duration {
	if s.ResetTokenTTL == 0 {
		return DefaultResetTokenTTL
	}
	// A negative TTL is honored as-is: the token is born expired. Tests use
	// this to exercise expiry without sleeping.
	return s.ResetTokenTTL
}
