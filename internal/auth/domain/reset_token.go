package domain

import "time"

// ResetToken is a single-use password-reset grant. Only the SHA-256
// fingerprint of the token is stored; the raw token lives exclusively in the
// link sent to the account holder. Redeeming any valid token deletes every
// outstanding token for the account.
type ResetToken struct {
	ID        string
	AccountID string
	TokenHash string // base64url SHA-256 fingerprint of the raw token
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its redemption deadline.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
