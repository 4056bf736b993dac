package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("unit-test-secret", time.Hour)

	token, err := m.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := m.Validate(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("unit-test-secret", -time.Minute)

	token, err := m.Generate(42)
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate(42)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	m := NewTokenManager("unit-test-secret", time.Hour)
	_, err := m.Validate("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2hunter2", hash)

	require.True(t, VerifyPassword("hunter2hunter2", hash))
	require.False(t, VerifyPassword("wrong", hash))
}
