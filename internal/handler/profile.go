package handler

import (
	"net/http"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	mw "github.com/jobdeck-dev/jobdeck/internal/middleware"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	user, err := h.auth.Profile(claims.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{Status: "success", Data: toUserResponse(user)})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	var body api.UpdateProfileRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	patch := domain.Profile{}
	if body.FirstName != nil {
		patch.FirstName = *body.FirstName
	}
	if body.LastName != nil {
		patch.LastName = *body.LastName
	}
	if body.OrganizationName != nil {
		patch.OrganizationName = *body.OrganizationName
	}
	if body.Website != nil {
		patch.Website = *body.Website
	}

	user, err := h.auth.UpdateProfile(claims.Id, patch)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{Status: "success", Data: toUserResponse(user)})
}
