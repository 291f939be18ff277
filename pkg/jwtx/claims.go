package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTLs. Short-lived access tokens authorize individual
// requests; the longer-lived refresh token is only good for minting a new
// pair. Both can be overridden per-service via configuration.
const (
	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the session-token claims shared by access and refresh tokens.
// Keeping changes additive preserves compatibility with already-issued
// tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the login key of the account.
	Email string `json:"email,omitempty"`

	// Name is the display name of the account.
	Name string `json:"name,omitempty"`
}

// AccountID returns the subject claim, which carries the account id.
func (c Claims) AccountID() string { return c.Subject }

func newClaims(accountID, email, name, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Email: email,
		Name:  name,
	}
}
