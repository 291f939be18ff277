package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, bcrypt.MinCost)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be bcrypt")
			require.True(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPasswordEmbedsCost(t *testing.T) {
	hash, err := HashPassword("pw12345678", 6)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, 6, cost)
}

func TestHashPasswordInvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("pw12345678", -1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, DefaultCost, cost)
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	first, err := HashPassword("pw12345678", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("pw12345678", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second, "salted hashes of the same password should differ")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw12345678", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("correct password matches", func(t *testing.T) {
		require.True(t, VerifyPassword("pw12345678", hash))
	})

	t.Run("wrong password does not match", func(t *testing.T) {
		require.False(t, VerifyPassword("wrong", hash))
	})

	t.Run("malformed hash is a mismatch, not a panic", func(t *testing.T) {
		require.False(t, VerifyPassword("pw12345678", "not-a-bcrypt-hash"))
		require.False(t, VerifyPassword("pw12345678", ""))
	})
}
