package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// ResetTokenSize is the number of random bytes in a password-reset token
// (256 bits of entropy before encoding).
const ResetTokenSize = 32

// GenerateResetToken creates a cryptographically secure random reset token.
// The token is hex-encoded (64 chars for ResetTokenSize bytes) so it is safe
// to embed in a URL path segment.
func GenerateResetToken() (string, error) {
	buf := make([]byte, ResetTokenSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Only fingerprints are persisted; the raw token exists solely in the link
// sent to the account holder, so a leaked table cannot be redeemed.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
