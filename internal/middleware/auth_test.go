package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/jwt"
)

func newTestAuth() (*Auth, jwt.JwtService) {
	jwtService := jwt.New("test-secret", 15*time.Minute, 24*time.Hour)
	return NewAuth(jwtService), jwtService
}

func accessTokenFor(t *testing.T, jwtService jwt.JwtService, user domain.User) string {
	t.Helper()
	token, err := jwtService.NewAccessToken(user)
	require.NoError(t, err)
	return token
}

func echoClaims(t *testing.T, gotClaims **domain.Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotClaims = GetClaimsFromContext(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestNeedAuth(t *testing.T) {
	authMw, jwtService := newTestAuth()
	user := domain.User{Id: 1, Email: "test@example.com", Role: domain.RoleJobSeeker}

	t.Run("valid bearer token", func(t *testing.T) {
		var gotClaims *domain.Claims
		handler := authMw.NeedAuth()(echoClaims(t, &gotClaims))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, user))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, user.Id, gotClaims.Id)
		assert.Equal(t, user.Role, gotClaims.Role)
	})

	t.Run("access token cookie", func(t *testing.T) {
		var gotClaims *domain.Claims
		handler := authMw.NeedAuth()(echoClaims(t, &gotClaims))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: accessTokenFor(t, jwtService, user)})
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotClaims)
	})

	t.Run("missing token", func(t *testing.T) {
		var gotClaims *domain.Claims
		handler := authMw.NeedAuth()(echoClaims(t, &gotClaims))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, gotClaims)
	})

	t.Run("garbage token", func(t *testing.T) {
		var gotClaims *domain.Claims
		handler := authMw.NeedAuth()(echoClaims(t, &gotClaims))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("refresh token is not accepted as access token", func(t *testing.T) {
		refresh, err := jwtService.NewRefreshToken(user)
		require.NoError(t, err)

		var gotClaims *domain.Claims
		handler := authMw.NeedAuth()(echoClaims(t, &gotClaims))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireRole(t *testing.T) {
	authMw, jwtService := newTestAuth()
	seeker := domain.User{Id: 1, Email: "seeker@example.com", Role: domain.RoleJobSeeker}
	org := domain.User{Id: 2, Email: "org@example.com", Role: domain.RoleOrganization}

	handler := authMw.RequireRole(domain.RoleOrganization)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, org))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+accessTokenFor(t, jwtService, seeker))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "Access denied")
	})
}
