// ABOUTME: Tests for password hashing and token round trips.
// ABOUTME: Token expiry is checked with an injected clock.
package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, CheckPassword(hash, "secret1"))
	assert.ErrorIs(t, CheckPassword(hash, "secret2"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("not-a-hash", "secret1"), ErrInvalidCredentials)
}

func TestHashPasswordTooShort(t *testing.T) {
	_, err := HashPassword("12345")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens, err := NewTokens("test-secret", time.Hour)
	require.NoError(t, err)

	userID := uuid.New()
	signed, err := tokens.Issue(userID)
	require.NoError(t, err)

	got, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer, _ := NewTokens("one", time.Hour)
	verifier, _ := NewTokens("two", time.Hour)

	signed, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens, _ := NewTokens("secret", time.Hour)
	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return start }

	signed, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	tokens.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = tokens.Verify(signed)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestNewTokensDefaults(t *testing.T) {
	_, err := NewTokens("", time.Hour)
	assert.Error(t, err)

	tokens, err := NewTokens("s", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, tokens.TTL())
}
