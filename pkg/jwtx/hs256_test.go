package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSigner(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewSigner("", "storeapi", time.Hour)
		require.ErrorIs(t, err, ErrNoSecret)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		_, err := NewSigner("secret", "storeapi", 0)
		require.Error(t, err)
	})
}

func TestIssueAndVerify(t *testing.T) {
	signer, err := NewSigner("access-secret", "storeapi", time.Hour)
	require.NoError(t, err)

	token, err := signer.Issue("acct-1", "ana@x.com", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct-1", claims.AccountID())
	require.Equal(t, "ana@x.com", claims.Email)
	require.Equal(t, "Ana", claims.Name)
	require.Equal(t, "storeapi", claims.Issuer)
	require.NotEmpty(t, claims.ID, "every token should carry a jti")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	access, err := NewSigner("access-secret", "storeapi", time.Hour)
	require.NoError(t, err)
	refresh, err := NewSigner("refresh-secret", "storeapi", time.Hour)
	require.NoError(t, err)

	token, err := access.Issue("acct-1", "ana@x.com", "Ana")
	require.NoError(t, err)

	// A token from one key class must never verify against the other.
	_, err = refresh.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	signer := &Signer{secret: []byte("access-secret"), issuer: "storeapi", ttl: -time.Minute}

	token, err := signer.Issue("acct-1", "ana@x.com", "Ana")
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken, "expired and tampered are indistinguishable")
}

func TestVerifyRejectsTampered(t *testing.T) {
	signer, err := NewSigner("access-secret", "storeapi", time.Hour)
	require.NoError(t, err)

	token, err := signer.Issue("acct-1", "ana@x.com", "Ana")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	_, err = signer.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	a, err := NewSigner("shared", "service-a", time.Hour)
	require.NoError(t, err)
	b, err := NewSigner("shared", "service-b", time.Hour)
	require.NoError(t, err)

	token, err := a.Issue("acct-1", "ana@x.com", "Ana")
	require.NoError(t, err)

	_, err = b.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
