// Package jwtx issues and verifies the signed session tokens used by the
// auth core. Tokens are HS256 JWTs; access and refresh tokens are signed
// with independent secrets so compromising one class cannot forge the other.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoSecret reports a signer constructed without key material.
	ErrNoSecret = errors.New("jwtx: empty signing secret")

	// ErrInvalidToken covers every verification failure: malformed, tampered,
	// wrong key, expired, not yet valid. Callers are deliberately not told
	// which; the distinction only helps an attacker probing tokens.
	ErrInvalidToken = errors.New("jwtx: invalid token")
)

// Signer issues and verifies HS256 tokens for a single token class
// (access or refresh). It is safe for concurrent use.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner creates a Signer from a shared secret. The secret comes from
// process configuration and is never generated here.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwtx: non-positive ttl %v", ttl)
	}

	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue signs a token carrying the account's id, email and display name.
func (s *Signer) Issue(accountID, email, name string) (string, error) {
	claims := newClaims(accountID, email, name, s.issuer, s.ttl, time.Now().UTC())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims. Any failure,
// from a bad signature to expiry to a wrong algorithm, collapses to
// ErrInvalidToken.
func (s *Signer) Verify(tokenString string) (Claims, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// TTL returns the configured token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }
