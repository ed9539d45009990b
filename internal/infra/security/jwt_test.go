package security

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/model"
)

var testSecret = []byte("jwt-issuer-test-secret-32-bytes!")

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	identity := model.Identity{UserID: "user-123", Email: "ana@example.com", Role: "user"}
	token, err := issuer.Issue(identity)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, identity, *got)
}

func TestNewJWTIssuer_WeakSecret(t *testing.T) {
	_, err := NewJWTIssuer([]byte("short"), time.Hour)
	assert.ErrorIs(t, err, ErrWeakSecret)
}

func TestJWTIssuer_InvalidToken(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	other, err := NewJWTIssuer([]byte("another-secret-that-is-32-bytes!"), time.Hour)
	require.NoError(t, err)
	foreign, err := other.Issue(model.Identity{UserID: "user-123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "not-a-jwt-token"},
		{name: "malformed JWT", token: "header.payload.signature"},
		{name: "wrong secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTIssuer_ExpiredToken(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Minute)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue(model.Identity{UserID: "user-123"})
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestJWTIssuer_MissingID(t *testing.T) {
	issuer, err := NewJWTIssuer(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(model.Identity{Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrMissingClaim)
}
