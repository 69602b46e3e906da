package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/service"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.auth.Register(service.RegistrationData{
		Email:            body.Email,
		Password:         body.Password,
		ConfirmPassword:  body.ConfirmPassword,
		Role:             domain.Role(body.Role),
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		OrganizationName: body.OrganizationName,
		Website:          body.Website,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "User registered. Check your email to activate your account.")
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	if err := h.auth.Activate(tokenStr); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Account activated. You can log in now.")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, access, refresh, err := h.auth.Login(body.Email, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// refresh credential travels only via the HttpOnly cookie, never the body
	http.SetCookie(w, h.refreshCookie(refresh, int(h.cfg.Public.RefreshTTL.Seconds())))

	utils.WriteJSON(w, http.StatusOK, api.LoginResponse{
		Status:      "success",
		User:        toUserResponse(user),
		AccessToken: access,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Refresh token missing"})
		return
	}

	access, err := h.auth.Refresh(cookie.Value)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.RefreshResponse{Status: "success", AccessToken: access})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.refreshCookie("", -1))
	utils.WriteSuccess(w, http.StatusOK, "Logged out successfully.")
}

func (h *Handler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	var body api.PasswordResetRequestRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.auth.RequestPasswordReset(body.Email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Password reset link sent to your email.")
}

func (h *Handler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	tokenStr := chi.URLParam(r, "token")

	var body api.PasswordResetConfirmRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.auth.ConfirmPasswordReset(tokenStr, body.NewPassword, body.ConfirmNewPassword); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, "Password has been reset successfully.")
}
