package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	assert.NotContains(t, hash, "secret1")

	// Same password, different salt, different hash.
	other, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := VerifyPassword("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong1", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordLegacyBcrypt(t *testing.T) {
	// Accounts created before the argon2id migration carry bcrypt hashes.
	legacy, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword("secret1", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong1", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("secret1", "plaintext-not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("secret1", "$argon2id$v=19$m=65536,t=3,p=2$!!!$???")
	assert.Error(t, err)
}
