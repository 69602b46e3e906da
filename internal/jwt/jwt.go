package jwt

import (
	std_errors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	internal_errors "github.com/jobdeck-dev/jobdeck/internal/errors"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

type JwtService interface {
	NewAccessToken(user domain.User) (string, error)
	NewRefreshToken(user domain.User) (string, error)
	DecodeAccessToken(jwtStr string) (*domain.Claims, error)
	DecodeRefreshToken(jwtStr string) (domain.UserId, error)
}

// Jwt issues and validates the access/refresh credential pair. Access tokens
// are short-lived and carry the subject identity; refresh tokens carry only
// the subject id and live longer. Neither is persisted server-side.
type Jwt struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(secretKey string, accessTTL, refreshTTL time.Duration) JwtService {
	return &Jwt{secretKey, accessTTL, refreshTTL}
}

func (j *Jwt) NewAccessToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.Id,
		"email": user.Email,
		"role":  string(user.Role),
		"typ":   "access",
		"exp":   time.Now().Add(j.accessTTL).Unix(),
	}
	return j.sign(claims)
}

func (j *Jwt) NewRefreshToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid": user.Id,
		"typ": "refresh",
		"exp": time.Now().Add(j.refreshTTL).Unix(),
	}
	return j.sign(claims)
}

func (j *Jwt) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", std_errors.New("can't create token")
	}
	return tokenString, nil
}

func (j *Jwt) decode(jwtStr, expectedType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != expectedType {
		return nil, errInvalidToken
	}
	return claims, nil
}

func (j *Jwt) DecodeAccessToken(jwtStr string) (*domain.Claims, error) {
	claims, err := j.decode(jwtStr, "access")
	if err != nil {
		return nil, err
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, errInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, errInvalidToken
	}

	return &domain.Claims{Id: domain.UserId(uid), Email: email, Role: domain.Role(role)}, nil
}

func (j *Jwt) DecodeRefreshToken(jwtStr string) (domain.UserId, error) {
	claims, err := j.decode(jwtStr, "refresh")
	if err != nil {
		return 0, err
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, errInvalidToken
	}
	return domain.UserId(uid), nil
}

var errInvalidToken = &internal_errors.ErrorWithStatusCode{Message: "Invalid token", StatusCode: http.StatusUnauthorized}
