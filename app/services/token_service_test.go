package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHMACTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, refreshTTL, "sportai", "sportai-api", false, "", "", "test-secret-key-for-unit-tests")
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(time.Minute, time.Hour, "sportai", "sportai-api", false, "", "", "")
	assert.Error(t, err)
}

func TestGenerateAndValidateStaffTokens(t *testing.T) {
	svc := newHMACTokenService(t, 15*time.Minute, 24*time.Hour)

	access, refresh, err := svc.GenerateStaffTokens(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateStaffToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.StaffID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.TokenID)

	refreshClaims, err := svc.ValidateStaffToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestValidateStaffTokenRejectsGarbage(t *testing.T) {
	svc := newHMACTokenService(t, 15*time.Minute, 24*time.Hour)

	_, err := svc.ValidateStaffToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateStaffTokenRejectsWrongKey(t *testing.T) {
	issuer := newHMACTokenService(t, 15*time.Minute, 24*time.Hour)
	other, err := NewTokenService(15*time.Minute, 24*time.Hour, "sportai", "sportai-api", false, "", "", "a-different-secret")
	require.NoError(t, err)

	access, _, err := issuer.GenerateStaffTokens(1, "staff")
	require.NoError(t, err)

	_, err = other.ValidateStaffToken(access)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	svc := newHMACTokenService(t, -time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateStaffTokens(7, "board")
	require.NoError(t, err)

	_, err = svc.ValidateStaffToken(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshStaffTokens(t *testing.T) {
	svc := newHMACTokenService(t, 15*time.Minute, 24*time.Hour)

	access, refresh, err := svc.GenerateStaffTokens(9, "staff")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshStaffTokens(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateStaffToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.StaffID)
	assert.Equal(t, "staff", claims.Role)

	// an access token cannot be used to refresh
	_, _, err = svc.RefreshStaffTokens(access)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newHMACTokenService(t, 15*time.Minute, 24*time.Hour)

	access, _, err := svc.GenerateStaffTokens(3, "admin")
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(access))

	require.NoError(t, svc.RevokeToken(access))
	assert.True(t, svc.IsTokenRevoked(access))

	_, err = svc.ValidateStaffToken(access)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
