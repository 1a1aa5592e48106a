package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("GoodPass1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, VerifyPassword(hash, "GoodPass1"))
	assert.False(t, VerifyPassword(hash, "GoodPass2"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSaltsEveryDigest(t *testing.T) {
	h1, err := HashPassword("GoodPass1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("GoodPass1", bcrypt.MinCost)
	require.NoError(t, err)

	// Random salt means repeated hashing never yields equal digests.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "GoodPass1"))
	assert.True(t, VerifyPassword(h2, "GoodPass1"))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-digest", "GoodPass1"))
	assert.False(t, VerifyPassword("", "GoodPass1"))
}
