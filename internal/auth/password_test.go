package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces a bcrypt hash", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$2"))
	})

	t.Run("never stores the plain text", func(t *testing.T) {
		hash, err := HashPassword("hunter22")
		require.NoError(t, err)
		require.NotContains(t, hash, "hunter22")
	})

	t.Run("hashes are salted", func(t *testing.T) {
		hash1, err := HashPassword("same-password")
		require.NoError(t, err)
		hash2, err := HashPassword("same-password")
		require.NoError(t, err)
		require.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		require.True(t, CheckPassword("correct horse battery staple", hash))
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		require.False(t, CheckPassword("wrong password", hash))
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		require.False(t, CheckPassword("", hash))
	})

	t.Run("rejects a garbage hash", func(t *testing.T) {
		require.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	})
}
