package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	mw "github.com/jobdeck-dev/jobdeck/internal/middleware"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

const defaultPage = 1

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	var body api.CreateJobRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	job, err := h.job.Create(domain.JobCreationData{
		OrganizationId: claims.Id,
		CategoryId:     body.CategoryId,
		TagIds:         body.TagIds,
		Title:          body.Title,
		Description:    body.Description,
		Location:       body.Location,
		Salary:         body.Salary,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, toJobResponse(job, false))
}

func (h *Handler) MyJobs(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	page := defaultPage
	if pageQuery := r.URL.Query().Get("page"); pageQuery != "" {
		var err error
		if page, err = parseIntParam(pageQuery, "page"); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{Status: "error", Message: err.Error()})
			return
		}
	}

	jobPage, err := h.job.ByOrganization(claims.Id, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toJobPageResponse(jobPage))
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "id"), "job id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{Status: "error", Message: err.Error()})
		return
	}

	var body api.UpdateJobRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	job, err := h.job.Update(int64(id), domain.JobPatch{
		CategoryId:  body.CategoryId,
		TagIds:      body.TagIds,
		Title:       body.Title,
		Description: body.Description,
		Location:    body.Location,
		Salary:      body.Salary,
		IsActive:    body.IsActive,
	}, *claims)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toJobResponse(job, false))
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "id"), "job id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{Status: "error", Message: err.Error()})
		return
	}

	if err := h.job.Delete(int64(id), *claims); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) JobDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	job, err := h.job.BySlug(slug)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, toJobResponse(job, true))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.job.Categories()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]api.CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = api.CategoryResponse{Id: c.Id, Title: c.Title, Slug: c.Slug}
	}
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{Status: "success", Data: response})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{Status: "error", Message: "Not authorized"})
		return
	}

	id, err := parseIntParam(chi.URLParam(r, "id"), "job id")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{Status: "error", Message: err.Error()})
		return
	}

	var body api.ApplyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.job.Apply(int64(id), *claims, body.Message); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, "Application submitted.")
}

// --- response mapping ---

func toJobResponse(job domain.Job, includeHTML bool) api.JobResponse {
	resp := api.JobResponse{
		Id:          job.Id,
		Title:       job.Title,
		Slug:        job.Slug,
		Description: job.Description,
		Location:    job.Location,
		Salary:      job.Salary,
		IsActive:    job.IsActive,
		Tags:        make([]api.TagResponse, 0, len(job.Tags)),
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   job.UpdatedAt.Format(time.RFC3339),
	}
	if includeHTML {
		resp.DescriptionHTML = job.DescriptionHTML
	}
	if job.Category != nil {
		resp.Category = &api.CategoryResponse{Id: job.Category.Id, Title: job.Category.Title, Slug: job.Category.Slug}
	}
	for _, t := range job.Tags {
		resp.Tags = append(resp.Tags, api.TagResponse{Id: t.Id, Title: t.Title, Slug: t.Slug})
	}
	if job.Organization != nil {
		resp.Organization = &api.OrganizationResponse{
			Id:               job.Organization.Id,
			OrganizationName: job.Organization.Profile.OrganizationName,
			Email:            job.Organization.Email,
			Website:          job.Organization.Profile.Website,
		}
	}
	for _, a := range job.Applicants {
		resp.Applicants = append(resp.Applicants, api.ApplicantResponse{
			Id:        a.Id,
			FirstName: a.Profile.FirstName,
			LastName:  a.Profile.LastName,
			Email:     a.Email,
		})
	}
	return resp
}

func toJobPageResponse(page domain.JobPage) api.JobPageResponse {
	resp := api.JobPageResponse{
		Count:       page.Count,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		Results:     make([]api.JobResponse, 0, len(page.Jobs)),
	}
	if page.CurrentPage < page.TotalPages {
		next := page.CurrentPage + 1
		resp.Next = &next
	}
	if page.CurrentPage > 1 {
		prev := page.CurrentPage - 1
		resp.Previous = &prev
	}
	for _, job := range page.Jobs {
		resp.Results = append(resp.Results, toJobResponse(job, false))
	}
	return resp
}

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, &paramError{paramName}
	}
	return val, nil
}

type paramError struct{ name string }

func (e *paramError) Error() string { return "invalid " + e.name + ": must be an integer" }
