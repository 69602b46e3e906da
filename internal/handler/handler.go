package handler

import (
	"net/http"
	"time"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/service"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

const refreshCookieName = "refresh_token"

type Handler struct {
	auth service.AuthService
	job  service.JobService
	cfg  *config.Config
}

func New(auth service.AuthService, job service.JobService, cfg *config.Config) *Handler {
	return &Handler{auth, job, cfg}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, "ok")
}

// refreshCookie builds the protected-channel cookie carrying the refresh
// credential. HttpOnly + SameSite keep it out of page scripts.
func (h *Handler) refreshCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Path:     "/",
		Name:     refreshCookieName,
		Value:    value,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func toUserResponse(user domain.User) api.UserResponse {
	return api.UserResponse{
		Id:               user.Id,
		Email:            user.Email,
		Role:             string(user.Role),
		FirstName:        user.Profile.FirstName,
		LastName:         user.Profile.LastName,
		OrganizationName: user.Profile.OrganizationName,
		Website:          user.Profile.Website,
		IsActive:         user.IsActive,
		DateJoined:       user.CreatedAt.Format(time.RFC3339),
	}
}
