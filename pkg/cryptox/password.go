package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds. DefaultCost matches what the rest of the backend has
// always used for account passwords.
const (
	DefaultCost = 12
	MinCost     = bcrypt.MinCost
	MaxCost     = bcrypt.MaxCost
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// The returned string embeds the salt and cost, so verification needs no
// extra state. Cost values outside the bcrypt range fall back to DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinCost || cost > MaxCost {
		cost = DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// bcrypt hash. A malformed hash is treated as a mismatch, never an error:
// callers only need to know whether the credential is acceptable.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
