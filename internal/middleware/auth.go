package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jobdeck-dev/jobdeck/internal/domain"
	jwt_internal "github.com/jobdeck-dev/jobdeck/internal/jwt"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid access token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth("")
}

// RequireRole returns middleware that additionally requires the given role.
func (a *Auth) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return a.auth(role)
}

// extractClaims validates the bearer access token from the Authorization
// header (or the accessToken cookie for browser clients).
func (a *Auth) extractClaims(r *http.Request) (*domain.Claims, error) {
	var tokenString string
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	} else if accessCookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = accessCookie.Value
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	return a.jwtService.DecodeAccessToken(tokenString)
}

var errNoToken = errorString("no token")

type errorString string

func (e errorString) Error() string { return string(e) }

func (a *Auth) auth(requiredRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.extractClaims(r)
			if err != nil {
				if err == errNoToken {
					utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Please sign-in"})
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if requiredRole != "" && claims.Role != requiredRole {
				utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{Status: "error", Message: "Access denied"})
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext retrieves the authenticated identity from the context.
func GetClaimsFromContext(r *http.Request) *domain.Claims {
	claims, ok := r.Context().Value(UserClaimsKey).(*domain.Claims)
	if !ok {
		return nil
	}
	return claims
}
