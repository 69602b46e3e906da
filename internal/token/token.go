package token

import (
	std_errors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	internal_errors "github.com/jobdeck-dev/jobdeck/internal/errors"
)

// Purpose restricts which endpoint may consume a token. A token minted for
// activation must never be accepted by the password-reset endpoint.
type Purpose string

const (
	PurposeActivation    Purpose = "activation"
	PurposePasswordReset Purpose = "password_reset"
)

// Codec mints and verifies signed, time-boxed, purpose-scoped tokens.
// Tokens are self-contained and never persisted; there is no early
// revocation, which is accepted for short-lived single-purpose links.
type Codec struct {
	secretKey string
}

func New(secretKey string) *Codec {
	return &Codec{secretKey: secretKey}
}

// Mint produces a signed token embedding the subject id, the purpose tag and
// an absolute expiry of now + ttl.
func (c *Codec) Mint(subjectId domain.UserId, purpose Purpose, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     subjectId,
		"purpose": string(purpose),
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(c.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, expiry and purpose, in that order, and returns the
// embedded subject id. The caller must still re-check that the subject exists
// and is in an appropriate state.
func (c *Codec) Verify(tokenString string, expected Purpose) (domain.UserId, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.secretKey), nil
	})
	if err != nil {
		if std_errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, ErrMalformed
	}
	if !token.Valid {
		return 0, ErrMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrMalformed
	}

	purpose, ok := claims["purpose"].(string)
	if !ok {
		return 0, ErrMalformed
	}
	if Purpose(purpose) != expected {
		return 0, ErrPurposeMismatch
	}

	subFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, ErrMalformed
	}

	return domain.UserId(subFloat), nil
}

var (
	ErrExpired         = &internal_errors.ErrorWithStatusCode{Message: "Link has expired", StatusCode: http.StatusBadRequest}
	ErrMalformed       = &internal_errors.ErrorWithStatusCode{Message: "Invalid or corrupted link", StatusCode: http.StatusBadRequest}
	ErrPurposeMismatch = &internal_errors.ErrorWithStatusCode{Message: "Token cannot be used for this operation", StatusCode: http.StatusBadRequest}
)
