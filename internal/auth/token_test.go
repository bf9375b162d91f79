package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42, "admin@example.com")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenManager_Verify(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	issuer := NewTokenManager("test-secret", 24*time.Hour)
	issuer.now = func() time.Time { return issuedAt }
	valid, err := issuer.Issue(7, "a@b.com")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "7",
		"exp": issuedAt.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "abc",
		"exp": issuedAt.Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		secret  string
		now     time.Time
		token   string
		wantErr bool
	}{
		{name: "Valid within lifetime", secret: "test-secret", now: issuedAt.Add(time.Hour), token: valid},
		{name: "Expired", secret: "test-secret", now: issuedAt.Add(25 * time.Hour), token: valid, wantErr: true},
		{name: "Wrong secret", secret: "other-secret", now: issuedAt, token: valid, wantErr: true},
		{name: "Malformed", secret: "test-secret", now: issuedAt, token: "not.a.token", wantErr: true},
		{name: "Empty", secret: "test-secret", now: issuedAt, token: "", wantErr: true},
		{name: "Unsigned algorithm", secret: "test-secret", now: issuedAt, token: none, wantErr: true},
		{name: "Missing expiry", secret: "test-secret", now: issuedAt, token: noExpiry, wantErr: true},
		{name: "Non-numeric subject", secret: "test-secret", now: issuedAt, token: badSubject, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewTokenManager(tt.secret, 24*time.Hour)
			m.now = func() time.Time { return tt.now }

			claims, err := m.Verify(tt.token)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "7", claims.Subject)
			}
		})
	}
}
