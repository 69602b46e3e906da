package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdeck-dev/jobdeck/internal/api"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/service"
)

var orgClaims = &domain.Claims{Id: 1, Email: "org@example.com", Role: domain.RoleOrganization}
var seekerClaims = &domain.Claims{Id: 2, Email: "seeker@example.com", Role: domain.RoleJobSeeker}

func TestCreateJobHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	route := "/v1/jobs"
	requestBody := []byte(`{
		"title": "Senior Go Developer",
		"description": "We need you",
		"location": "Remote",
		"category_id": 3,
		"tags_ids": [1, 2]
	}`)

	t.Run("successful create", func(t *testing.T) {
		var got domain.JobCreationData
		h.job = &MockJobService{MockCreate: func(data domain.JobCreationData) (domain.Job, error) {
			got = data
			return domain.Job{Id: 10, Title: data.Title, Slug: "senior-go-developer", IsActive: true}, nil
		}}

		req := withClaims(createRequest(t, http.MethodPost, route, requestBody), orgClaims)
		rr := httptest.NewRecorder()

		h.CreateJob(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, orgClaims.Id, got.OrganizationId, "organization comes from the token, not the body")
		assert.Equal(t, []int64{1, 2}, got.TagIds)
		assert.Contains(t, rr.Body.String(), "senior-go-developer")
	})

	t.Run("missing required fields", func(t *testing.T) {
		h.job = &MockJobService{}

		req := withClaims(createRequest(t, http.MethodPost, route, []byte(`{"title": "x"}`)), orgClaims)
		rr := httptest.NewRecorder()

		h.CreateJob(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no claims", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		h.CreateJob(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMyJobsHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	t.Run("returns the paginated envelope", func(t *testing.T) {
		h.job = &MockJobService{MockByOrganization: func(orgId domain.UserId, page int) (domain.JobPage, error) {
			assert.Equal(t, orgClaims.Id, orgId)
			assert.Equal(t, 2, page)
			return domain.JobPage{
				Jobs:        []domain.Job{{Id: 10, Title: "A"}},
				Count:       19,
				TotalPages:  3,
				CurrentPage: 2,
				PageSize:    9,
			}, nil
		}}

		req := withClaims(createRequest(t, http.MethodGet, "/v1/jobs/my-jobs?page=2", nil), orgClaims)
		rr := httptest.NewRecorder()

		h.MyJobs(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.JobPageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 19, resp.Count)
		require.NotNil(t, resp.Next)
		assert.Equal(t, 3, *resp.Next)
		require.NotNil(t, resp.Previous)
		assert.Equal(t, 1, *resp.Previous)
	})

	t.Run("first page has no previous", func(t *testing.T) {
		h.job = &MockJobService{MockByOrganization: func(orgId domain.UserId, page int) (domain.JobPage, error) {
			return domain.JobPage{CurrentPage: 1, TotalPages: 1, PageSize: 9}, nil
		}}

		req := withClaims(createRequest(t, http.MethodGet, "/v1/jobs/my-jobs", nil), orgClaims)
		rr := httptest.NewRecorder()

		h.MyJobs(rr, req)

		var resp api.JobPageResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Nil(t, resp.Next)
		assert.Nil(t, resp.Previous)
	})

	t.Run("non-numeric page", func(t *testing.T) {
		h.job = &MockJobService{}

		req := withClaims(createRequest(t, http.MethodGet, "/v1/jobs/my-jobs?page=abc", nil), orgClaims)
		rr := httptest.NewRecorder()

		h.MyJobs(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateJobHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	router := chi.NewRouter()
	router.Patch("/v1/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.UpdateJob(w, withClaims(r, orgClaims))
	})

	t.Run("successful update", func(t *testing.T) {
		var gotId domain.JobId
		var gotPatch domain.JobPatch
		h.job = &MockJobService{MockUpdate: func(id domain.JobId, patch domain.JobPatch, actor domain.Claims) (domain.Job, error) {
			gotId = id
			gotPatch = patch
			return domain.Job{Id: id}, nil
		}}

		req := createRequest(t, http.MethodPatch, "/v1/jobs/10", []byte(`{"is_active": false}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.JobId(10), gotId)
		require.NotNil(t, gotPatch.IsActive)
		assert.False(t, *gotPatch.IsActive)
		assert.Nil(t, gotPatch.Title, "untouched fields stay nil")
	})

	t.Run("not the owner", func(t *testing.T) {
		h.job = &MockJobService{MockUpdate: func(id domain.JobId, patch domain.JobPatch, actor domain.Claims) (domain.Job, error) {
			return domain.Job{}, service.ErrNotJobOwner
		}}

		req := createRequest(t, http.MethodPatch, "/v1/jobs/10", []byte(`{}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		h.job = &MockJobService{}

		req := createRequest(t, http.MethodPatch, "/v1/jobs/abc", []byte(`{}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteJobHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	router := chi.NewRouter()
	router.Delete("/v1/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.DeleteJob(w, withClaims(r, orgClaims))
	})

	t.Run("successful delete returns no content", func(t *testing.T) {
		h.job = &MockJobService{}

		req := createRequest(t, http.MethodDelete, "/v1/jobs/10", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		h.job = &MockJobService{MockDelete: func(id domain.JobId, actor domain.Claims) error {
			return errUserNotFound
		}}

		req := createRequest(t, http.MethodDelete, "/v1/jobs/10", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestJobDetailHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	router := chi.NewRouter()
	router.Get("/v1/jobs/detail/{slug}", h.JobDetail)

	t.Run("includes rendered description", func(t *testing.T) {
		salary := 95000.0
		h.job = &MockJobService{MockBySlug: func(slug domain.Slug) (domain.Job, error) {
			return domain.Job{
				Id:              10,
				Title:           "Senior Go Developer",
				Slug:            slug,
				Description:     "**bold**",
				DescriptionHTML: "<p><strong>bold</strong></p>",
				Salary:          &salary,
				IsActive:        true,
				Category:        &domain.Category{Id: 3, Title: "Engineering", Slug: "engineering"},
				Organization: &domain.User{
					Id:      1,
					Email:   "org@example.com",
					Profile: domain.Profile{OrganizationName: "Acme"},
				},
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}}

		req := createRequest(t, http.MethodGet, "/v1/jobs/detail/senior-go-developer", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.JobResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "<p><strong>bold</strong></p>", resp.DescriptionHTML)
		require.NotNil(t, resp.Organization)
		assert.Equal(t, "Acme", resp.Organization.OrganizationName)
		require.NotNil(t, resp.Category)
		assert.Equal(t, "engineering", resp.Category.Slug)
	})

	t.Run("unknown slug", func(t *testing.T) {
		h.job = &MockJobService{MockBySlug: func(slug domain.Slug) (domain.Job, error) {
			return domain.Job{}, errUserNotFound
		}}

		req := createRequest(t, http.MethodGet, "/v1/jobs/detail/nope", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCategoriesHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	h.job = &MockJobService{MockCategories: func() ([]domain.Category, error) {
		return []domain.Category{
			{Id: 1, Title: "Engineering", Slug: "engineering"},
			{Id: 2, Title: "Design", Slug: "design"},
		}, nil
	}}

	req := createRequest(t, http.MethodGet, "/v1/categories", nil)
	rr := httptest.NewRecorder()

	h.Categories(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "engineering")
	assert.Contains(t, rr.Body.String(), "design")
}

func TestApplyHandler(t *testing.T) {
	h := New(&MockAuthService{}, &MockJobService{}, testConfig())

	router := chi.NewRouter()
	router.Post("/v1/jobs/{id}/apply", func(w http.ResponseWriter, r *http.Request) {
		h.Apply(w, withClaims(r, seekerClaims))
	})

	t.Run("successful application", func(t *testing.T) {
		var gotJobId domain.JobId
		var gotMessage string
		h.job = &MockJobService{MockApply: func(jobId domain.JobId, actor domain.Claims, message string) error {
			gotJobId = jobId
			gotMessage = message
			return nil
		}}

		req := createRequest(t, http.MethodPost, "/v1/jobs/10/apply", []byte(`{"message": "Hire me"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.JobId(10), gotJobId)
		assert.Equal(t, "Hire me", gotMessage)
	})

	t.Run("missing message", func(t *testing.T) {
		h.job = &MockJobService{}

		req := createRequest(t, http.MethodPost, "/v1/jobs/10/apply", []byte(`{}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
