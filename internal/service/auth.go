package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/dispatch"
	"github.com/jobdeck-dev/jobdeck/internal/errors"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/token"
)

type RegistrationData struct {
	Email            domain.Email
	Password         domain.Password
	ConfirmPassword  domain.Password
	Role             domain.Role
	FirstName        string
	LastName         string
	OrganizationName string
	Website          string
}

type AuthService interface {
	Register(data RegistrationData) error
	Activate(tokenStr string) error
	Login(email domain.Email, password domain.Password) (domain.User, string, string, error)
	Refresh(refreshToken string) (string, error)
	RequestPasswordReset(email domain.Email) error
	ConfirmPasswordReset(tokenStr string, newPassword, confirmPassword domain.Password) error
	Profile(userId domain.UserId) (domain.User, error)
	UpdateProfile(userId domain.UserId, patch domain.Profile) (domain.User, error)
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByEmail(email domain.Email) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
	ActivateUser(id domain.UserId) error
	UpdatePassword(id domain.UserId, passHash string) error
	UpdateProfile(id domain.UserId, profile domain.Profile) error
	DeleteUser(id domain.UserId) error
}

type Dispatcher interface {
	Enqueue(ctx context.Context, templateId string, params map[string]string, recipient string) (string, error)
}

type Jwt interface {
	NewAccessToken(user domain.User) (string, error)
	NewRefreshToken(user domain.User) (string, error)
	DecodeRefreshToken(jwtStr string) (domain.UserId, error)
}

type Auth struct {
	storage    AuthStorage
	dispatcher Dispatcher
	tokens     *token.Codec
	jwt        Jwt
	cfg        *config.Config
}

func NewAuth(storage AuthStorage, dispatcher Dispatcher, tokens *token.Codec, jwt Jwt, cfg *config.Config) *Auth {
	return &Auth{
		storage:    storage,
		dispatcher: dispatcher,
		tokens:     tokens,
		jwt:        jwt,
		cfg:        cfg,
	}
}

// dummyHash is compared against when the account does not exist, so a failed
// login takes the same time whether the email or the password was wrong.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("jobdeck-timing-pad"), bcrypt.DefaultCost)

// Register creates an inactive account, mints a 24h activation token and
// enqueues the activation email. If the queue is unreachable the account is
// deleted again: no account may exist without a dispatch attempt.
func (a *Auth) Register(data RegistrationData) error {
	email := strings.ToLower(data.Email)

	if err := validateRoleFields(data.Role, domain.Profile{
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		OrganizationName: data.OrganizationName,
		Website:          data.Website,
	}, true); err != nil {
		return err
	}
	if err := validatePassword(data.Password, data.ConfirmPassword); err != nil {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "operation", "register", "error", err)
		return err
	}

	userId, err := a.storage.SaveUser(domain.User{
		Email:    email,
		PassHash: string(passHash),
		Role:     data.Role,
		Profile: domain.Profile{
			FirstName:        data.FirstName,
			LastName:         data.LastName,
			OrganizationName: data.OrganizationName,
			Website:          data.Website,
		},
		IsActive: false,
	})
	if err != nil {
		return err
	}
	logger.Log.Info("user created", "operation", "register", "user_id", userId, "email", email)

	activationToken, err := a.tokens.Mint(userId, token.PurposeActivation, a.cfg.Public.ActivationTTL)
	if err != nil {
		logger.Log.Error("failed to mint activation token", "operation", "register", "user_id", userId, "error", err)
		return err
	}
	activationURL := fmt.Sprintf("%s/v1/auth/activate/%s", a.cfg.Public.BaseURL, activationToken)

	_, err = a.dispatcher.Enqueue(context.Background(), dispatch.TemplateActivation,
		map[string]string{"ActivationURL": activationURL}, email)
	if err != nil {
		// compensating action: no account without a dispatch attempt
		logger.Log.Error("failed to queue activation email, rolling back user", "operation", "register", "user_id", userId, "error", err)
		if delErr := a.storage.DeleteUser(userId); delErr != nil {
			logger.Log.Error("rollback failed, orphaned inactive account", "operation", "register", "user_id", userId, "error", delErr)
		}
		return err
	}

	return nil
}

// Activate flips an account from pending to active. Re-visiting the link
// after success is an error, not a state change.
func (a *Auth) Activate(tokenStr string) error {
	userId, err := a.tokens.Verify(tokenStr, token.PurposeActivation)
	if err != nil {
		logger.Log.Warn("activation token rejected", "operation", "activate", "error", err)
		return err
	}

	user, err := a.storage.UserById(userId)
	if err != nil {
		if errors.IsNotFound(err) {
			return &errors.ErrorWithStatusCode{Message: "Invalid activation token or user does not exist.", StatusCode: http.StatusBadRequest}
		}
		return err
	}

	if user.IsActive {
		logger.Log.Warn("account already activated", "operation", "activate", "user_id", user.Id)
		return ErrAlreadyActivated
	}

	if err := a.storage.ActivateUser(user.Id); err != nil {
		return err
	}
	logger.Log.Info("account activated", "operation", "activate", "user_id", user.Id)
	return nil
}

// Login returns the user plus a fresh access/refresh pair. Failures are a
// constant InvalidCredentials regardless of whether the email or the password
// was wrong; only an inactive account is reported distinctly.
func (a *Auth) Login(email domain.Email, password domain.Password) (domain.User, string, string, error) {
	email = strings.ToLower(email)

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			// burn the same bcrypt cost as the found-user path
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return domain.User{}, "", "", ErrInvalidCredentials
		}
		return domain.User{}, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return domain.User{}, "", "", ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.Log.Warn("login attempt for inactive account", "operation", "login", "user_id", user.Id)
		return domain.User{}, "", "", ErrAccountInactive
	}

	access, err := a.jwt.NewAccessToken(user)
	if err != nil {
		logger.Log.Error("failed to create access token", "operation", "login", "user_id", user.Id, "error", err)
		return domain.User{}, "", "", err
	}
	refresh, err := a.jwt.NewRefreshToken(user)
	if err != nil {
		logger.Log.Error("failed to create refresh token", "operation", "login", "user_id", user.Id, "error", err)
		return domain.User{}, "", "", err
	}

	logger.Log.Info("successful login", "operation", "login", "user_id", user.Id)
	return user, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (a *Auth) Refresh(refreshToken string) (string, error) {
	userId, err := a.jwt.DecodeRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := a.storage.UserById(userId)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !user.IsActive {
		return "", ErrAccountInactive
	}

	return a.jwt.NewAccessToken(user)
}

// RequestPasswordReset mints a 1h reset token and enqueues the reset email.
// Unlike login, this endpoint reports whether the account exists; that
// asymmetry is part of the contracted behavior.
func (a *Auth) RequestPasswordReset(email domain.Email) error {
	email = strings.ToLower(email)

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		return err // 404 passes through
	}
	if !user.IsActive {
		return ErrAccountInactive
	}

	resetToken, err := a.tokens.Mint(user.Id, token.PurposePasswordReset, a.cfg.Public.PasswordResetTTL)
	if err != nil {
		logger.Log.Error("failed to mint reset token", "operation", "password_reset_request", "user_id", user.Id, "error", err)
		return err
	}
	resetURL := fmt.Sprintf("%s/v1/auth/password-reset/confirm/%s", a.cfg.Public.BaseURL, resetToken)

	_, err = a.dispatcher.Enqueue(context.Background(), dispatch.TemplatePasswordReset,
		map[string]string{"ResetURL": resetURL}, email)
	if err != nil {
		logger.Log.Error("failed to queue password reset email", "operation", "password_reset_request", "user_id", user.Id, "error", err)
		return err
	}

	logger.Log.Info("password reset requested", "operation", "password_reset_request", "user_id", user.Id)
	return nil
}

// ConfirmPasswordReset verifies a reset token and overwrites the credential
// hash. An activation token presented here fails with a purpose mismatch.
func (a *Auth) ConfirmPasswordReset(tokenStr string, newPassword, confirmPassword domain.Password) error {
	userId, err := a.tokens.Verify(tokenStr, token.PurposePasswordReset)
	if err != nil {
		logger.Log.Warn("reset token rejected", "operation", "password_reset_confirm", "error", err)
		return err
	}

	if err := validatePassword(newPassword, confirmPassword); err != nil {
		return err
	}

	user, err := a.storage.UserById(userId)
	if err != nil {
		if errors.IsNotFound(err) {
			return &errors.ErrorWithStatusCode{Message: "Invalid or corrupted password reset link.", StatusCode: http.StatusBadRequest}
		}
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "operation", "password_reset_confirm", "user_id", user.Id, "error", err)
		return err
	}

	if err := a.storage.UpdatePassword(user.Id, string(passHash)); err != nil {
		return err
	}
	logger.Log.Info("password reset", "operation", "password_reset_confirm", "user_id", user.Id)
	return nil
}

func (a *Auth) Profile(userId domain.UserId) (domain.User, error) {
	return a.storage.UserById(userId)
}

// UpdateProfile mutates the role-appropriate profile fields only. Email,
// role and activation state are read-only through this path.
func (a *Auth) UpdateProfile(userId domain.UserId, patch domain.Profile) (domain.User, error) {
	user, err := a.storage.UserById(userId)
	if err != nil {
		return domain.User{}, err
	}

	merged := user.Profile
	if patch.FirstName != "" {
		merged.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		merged.LastName = patch.LastName
	}
	if patch.OrganizationName != "" {
		merged.OrganizationName = patch.OrganizationName
	}
	if patch.Website != "" {
		merged.Website = patch.Website
	}

	if err := validateRoleFields(user.Role, merged, false); err != nil {
		return domain.User{}, err
	}
	if err := a.storage.UpdateProfile(userId, merged); err != nil {
		return domain.User{}, err
	}

	user.Profile = merged
	logger.Log.Info("profile updated", "operation", "update_profile", "user_id", userId)
	return user, nil
}

// validateRoleFields enforces the mutually exclusive field sets: job seekers
// carry a personal name pair, organizations carry an organization name.
// requireOwn additionally demands the role's own fields be present
// (registration); profile updates only forbid the other role's fields.
func validateRoleFields(role domain.Role, p domain.Profile, requireOwn bool) error {
	if !role.Valid() {
		return &errors.ErrorWithStatusCode{Message: "Role must be job_seeker or organization", StatusCode: http.StatusBadRequest}
	}

	switch role {
	case domain.RoleJobSeeker:
		if requireOwn && (p.FirstName == "" || p.LastName == "") {
			return &errors.ErrorWithStatusCode{Message: "First name and last name are required for job seekers", StatusCode: http.StatusBadRequest}
		}
		if p.OrganizationName != "" || p.Website != "" {
			return &errors.ErrorWithStatusCode{Message: "Organization fields should not be provided for job seekers", StatusCode: http.StatusBadRequest}
		}
	case domain.RoleOrganization:
		if requireOwn && p.OrganizationName == "" {
			return &errors.ErrorWithStatusCode{Message: "Organization name is required for organizations", StatusCode: http.StatusBadRequest}
		}
		if p.FirstName != "" || p.LastName != "" {
			return &errors.ErrorWithStatusCode{Message: "Personal name fields should not be provided for organizations", StatusCode: http.StatusBadRequest}
		}
	}
	return nil
}

func validatePassword(password, confirm domain.Password) error {
	if len(password) < 8 {
		return &errors.ErrorWithStatusCode{Message: "Password must be at least 8 characters", StatusCode: http.StatusBadRequest}
	}
	if password != confirm {
		return &errors.ErrorWithStatusCode{Message: "Passwords do not match", StatusCode: http.StatusBadRequest}
	}
	return nil
}

var (
	ErrInvalidCredentials = &errors.ErrorWithStatusCode{Message: "Invalid email or password.", StatusCode: http.StatusUnauthorized}
	ErrAccountInactive    = &errors.ErrorWithStatusCode{Message: "Account is not activated. Please check your email.", StatusCode: http.StatusForbidden}
	ErrAlreadyActivated   = &errors.ErrorWithStatusCode{Message: "Account already activated.", StatusCode: http.StatusBadRequest}
)
