package token

import (
	"testing"
	"time"

	"resale/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePairRoundTrip(t *testing.T) {
	pair, err := IssuePair("user-1", domain.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	refreshClaims, err := ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.UserID)
}

func TestParseAccessExpired(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(appConfig.AccessTokenSecret))
	require.NoError(t, err)

	_, err = ParseAccess(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParseAccessWrongSecret(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("not-the-signing-secret"))
	require.NoError(t, err)

	_, err = ParseAccess(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseAccessGarbage(t *testing.T) {
	_, err := ParseAccess("not.a.token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAccess(raw)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestExpiryFallback(t *testing.T) {
	assert.Equal(t, 2*time.Hour, expiry("2h", time.Hour))
	assert.Equal(t, time.Hour, expiry("", time.Hour))
	assert.Equal(t, time.Hour, expiry("banana", time.Hour))
	assert.Equal(t, time.Hour, expiry("-5m", time.Hour))
}
