package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brgykonek/brgykonek-backend/internal/apperrors"
)

func TestNewTokenManager(t *testing.T) {
	t.Run("missing secret rejected at construction", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.KindSigningKeyMissing))
	})

	t.Run("non-positive ttl falls back to seven days", func(t *testing.T) {
		m, err := NewTokenManager("secret", 0)
		require.NoError(t, err)
		assert.Equal(t, 7*24*time.Hour, m.TTL())
	})
}

func TestIssueAndVerify(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue("64f1c0ffee0000000000abcd")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000abcd", userID)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuerMgr, err := NewTokenManager("secret-a", time.Hour)
	require.NoError(t, err)
	verifierMgr, err := NewTokenManager("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuerMgr.Issue("user-1")
	require.NoError(t, err)

	_, err = verifierMgr.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Nanosecond)
	require.NoError(t, err)

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = m.Verify(token)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindExpired))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = m.Verify("not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindInvalidToken))
}
