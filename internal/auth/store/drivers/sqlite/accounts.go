package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tokoku/storeapi/internal/auth/domain"
	"github.com/tokoku/storeapi/internal/auth/store"
)

type accountsRepo struct {
	db querier
}

const accountCredentialColumns = `id, name, email, password_hash, refresh_token, role, created_at, updated_at`

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountCredentialColumns+` FROM accounts WHERE email = ?`, email)
	return scanCredentialAccount(row)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	// Narrow projection: credential columns are deliberately not selected.
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, created_at, updated_at FROM accounts WHERE id = ?`, id)

	var a domain.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByIDAndRefreshToken(ctx context.Context, id, refreshToken string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountCredentialColumns+` FROM accounts WHERE id = ? AND refresh_token = ?`,
		id, refreshToken)
	return scanCredentialAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, email, password_hash, refresh_token, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.PasswordHash, mapStringNull(a.RefreshToken), a.Role, now, now)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, accountID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) SetRefreshToken(ctx context.Context, accountID, refreshToken string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET refresh_token = ?, updated_at = ? WHERE id = ?`,
		mapStringNull(refreshToken), time.Now().UTC(), accountID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountsRepo) RotateRefreshToken(ctx context.Context, accountID, oldToken, newToken string) error {
	// Compare-and-swap: only the caller still holding the current token wins.
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET refresh_token = ?, updated_at = ? WHERE id = ? AND refresh_token = ?`,
		mapStringNull(newToken), time.Now().UTC(), accountID, oldToken)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanCredentialAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var refresh sql.NullString

	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &refresh, &a.Role, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.RefreshToken = mapNullString(refresh)
	return a, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
