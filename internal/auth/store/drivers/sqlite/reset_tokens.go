package sqlite

import (
	"context"
	"time"

	"github.com/tokoku/storeapi/internal/auth/domain"
)

type resetTokensRepo struct {
	db querier
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, account_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.TokenHash, t.ExpiresAt.UTC(), time.Now().UTC())
	return mapConstraint(err)
}

func (r *resetTokensRepo) GetActiveResetToken(ctx context.Context, accountID, tokenHash string) (domain.ResetToken, error) {
	// Expiry is filtered in SQL so an expired token is indistinguishable from
	// an absent one.
	row := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, token_hash, expires_at, created_at
		 FROM reset_tokens
		 WHERE account_id = ? AND token_hash = ? AND expires_at > ?`,
		accountID, tokenHash, time.Now().UTC())

	var t domain.ResetToken
	err := row.Scan(&t.ID, &t.AccountID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *resetTokensRepo) DeleteAccountResetTokens(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE account_id = ?`, accountID)
	return err
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
