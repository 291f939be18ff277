package domain

import "time"

// Default role assigned to self-registered accounts. The auth core passes
// roles through without enforcing them.
const RoleUser = "user"

// Account is a credential record. Email is the login key and unique,
// case-sensitive as stored. PasswordHash and RefreshToken are credential
// fields: default store reads leave them empty and they never appear in a
// response payload.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt encoded; empty on narrow-projection reads
	RefreshToken string // latest issued refresh token; overwritten on each login/refresh
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Redacted returns a copy safe to hand outward: credential fields cleared.
func (a Account) Redacted() Account {
	a.PasswordHash = ""
	a.RefreshToken = ""
	return a
}
