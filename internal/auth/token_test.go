package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(now time.Time) *TokenManager {
	m := NewTokenManager("secret", "mas-booking", time.Hour)
	m.now = func() time.Time { return now }
	return m
}

func TestTokenManager_RoundTrip(t *testing.T) {
	now := time.Now()
	m := newTestManager(now)

	token, expires, err := m.Issue(42, "admin@example.com", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expires, time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID())
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, _, err := newTestManager(issued).Issue(1, "a@b.c", "admin")
	require.NoError(t, err)

	_, err = newTestManager(time.Now()).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecretOrIssuer(t *testing.T) {
	now := time.Now()
	token, _, err := newTestManager(now).Issue(1, "a@b.c", "admin")
	require.NoError(t, err)

	other := NewTokenManager("other", "mas-booking", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign := NewTokenManager("secret", "someone-else", time.Hour)
	_, err = foreign.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = newTestManager(now).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}
