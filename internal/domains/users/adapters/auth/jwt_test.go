package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", userID)
}

func TestJWTIssuer_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewJWTIssuer("secret-a", time.Hour)
	require.NoError(t, err)
	other, err := NewJWTIssuer("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestJWTIssuer_RejectsExpiredToken(t *testing.T) {
	short, err := NewJWTIssuer("test-secret", time.Nanosecond)
	require.NoError(t, err)

	token, err := short.Issue("user-123")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	_, err = short.Verify(token)
	require.Error(t, err)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer("   ", time.Hour)
	require.Error(t, err)
}
