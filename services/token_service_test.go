package services

import (
	"strings"
	"testing"
	"time"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService() *TokenService {
	return NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGeneratePair_TokensAreThreeSegments(t *testing.T) {
	svc := testTokenService()
	pair, err := svc.GeneratePair(&models.User{ID: 42, Username: "rivera", Role: models.RoleUser})
	require.NoError(t, err)

	assert.Len(t, strings.Split(pair.AccessToken, "."), 3)
	assert.Len(t, strings.Split(pair.RefreshToken, "."), 3)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	svc := testTokenService()
	pair, err := svc.GeneratePair(&models.User{ID: 42, Username: "rivera", Role: models.RoleUser})
	require.NoError(t, err)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "rivera", claims["username"])

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRefresh_RoundTrip(t *testing.T) {
	svc := testTokenService()
	pair, err := svc.GeneratePair(&models.User{ID: 7, Username: "ana", Role: models.RoleAdmin})
	require.NoError(t, err)

	userID, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsGarbageAndForeignKeys(t *testing.T) {
	svc := testTokenService()

	_, err := svc.VerifyAccess("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenService("another-secret", time.Minute, time.Hour)
	pair, err := other.GeneratePair(&models.User{ID: 1, Username: "x"})
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
