package jwt

import (
	"testing"
	"time"

	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = domain.User{
	Id:    7,
	Email: "org@example.com",
	Role:  domain.RoleOrganization,
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := New("secret", time.Minute, time.Hour)

	tokenStr, err := svc.NewAccessToken(testUser)
	require.NoError(t, err)

	claims, err := svc.DecodeAccessToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, testUser.Id, claims.Id)
	assert.Equal(t, testUser.Email, claims.Email)
	assert.Equal(t, testUser.Role, claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := New("secret", time.Minute, time.Hour)

	tokenStr, err := svc.NewRefreshToken(testUser)
	require.NoError(t, err)

	uid, err := svc.DecodeRefreshToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, testUser.Id, uid)
}

func TestTokenTypeConfusion(t *testing.T) {
	svc := New("secret", time.Minute, time.Hour)

	access, err := svc.NewAccessToken(testUser)
	require.NoError(t, err)
	refresh, err := svc.NewRefreshToken(testUser)
	require.NoError(t, err)

	// a refresh token must not pass as an access token, and vice versa
	_, err = svc.DecodeAccessToken(refresh)
	assert.Error(t, err)
	_, err = svc.DecodeRefreshToken(access)
	assert.Error(t, err)
}

func TestExpiredAccessToken(t *testing.T) {
	svc := New("secret", -time.Minute, time.Hour)

	tokenStr, err := svc.NewAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.DecodeAccessToken(tokenStr)
	assert.Error(t, err)
}

func TestWrongKey(t *testing.T) {
	svc := New("secret", time.Minute, time.Hour)
	other := New("other", time.Minute, time.Hour)

	tokenStr, err := other.NewAccessToken(testUser)
	require.NoError(t, err)

	_, err = svc.DecodeAccessToken(tokenStr)
	assert.Error(t, err)
}
