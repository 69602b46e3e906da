package service

import (
	"fmt"
	"net/http"

	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/domain"
	"github.com/jobdeck-dev/jobdeck/internal/errors"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/utils"
)

type JobService interface {
	Create(data domain.JobCreationData) (domain.Job, error)
	Update(id domain.JobId, patch domain.JobPatch, actor domain.Claims) (domain.Job, error)
	Delete(id domain.JobId, actor domain.Claims) error
	BySlug(slug domain.Slug) (domain.Job, error)
	ByOrganization(orgId domain.UserId, page int) (domain.JobPage, error)
	Categories() ([]domain.Category, error)
	Apply(jobId domain.JobId, actor domain.Claims, message string) error
}

type JobStorage interface {
	CreateJob(job domain.Job) (domain.JobId, error)
	JobById(id domain.JobId) (domain.Job, error)
	JobBySlug(slug domain.Slug) (domain.Job, error)
	JobsByOrganization(orgId domain.UserId, offset, limit int) ([]domain.Job, int, error)
	UpdateJob(id domain.JobId, patch domain.JobPatch, newSlug *domain.Slug) error
	DeleteJob(id domain.JobId) error
	Categories() ([]domain.Category, error)
	SaveApplication(app domain.Application) error
	SlugExists(slug domain.Slug) (bool, error)
}

// DescriptionRenderer turns markdown job descriptions into sanitized html
// for detail views.
type DescriptionRenderer interface {
	Render(source string) (string, error)
}

type Job struct {
	storage  JobStorage
	renderer DescriptionRenderer
	cfg      *config.Config
}

func NewJob(storage JobStorage, renderer DescriptionRenderer, cfg *config.Config) *Job {
	return &Job{storage: storage, renderer: renderer, cfg: cfg}
}

// Create inserts a new posting for the organization in data. The slug is
// derived from the title with a numeric suffix on collision.
func (j *Job) Create(data domain.JobCreationData) (domain.Job, error) {
	slug, err := j.uniqueSlug(data.Title)
	if err != nil {
		return domain.Job{}, err
	}

	job := domain.Job{
		OrganizationId: data.OrganizationId,
		CategoryId:     data.CategoryId,
		Title:          data.Title,
		Slug:           slug,
		Description:    data.Description,
		Location:       data.Location,
		Salary:         data.Salary,
		IsActive:       true,
	}
	for _, tagId := range data.TagIds {
		job.Tags = append(job.Tags, domain.Tag{Id: tagId})
	}

	id, err := j.storage.CreateJob(job)
	if err != nil {
		return domain.Job{}, err
	}
	logger.Log.Info("job created", "operation", "create_job", "job_id", id, "org_id", data.OrganizationId)

	return j.storage.JobById(id)
}

// Update applies a partial patch to a posting owned by the actor. A title
// change regenerates the slug, as in Create.
func (j *Job) Update(id domain.JobId, patch domain.JobPatch, actor domain.Claims) (domain.Job, error) {
	job, err := j.owned(id, actor)
	if err != nil {
		return domain.Job{}, err
	}

	var newSlug *domain.Slug
	if patch.Title != nil && *patch.Title != job.Title {
		slug, err := j.uniqueSlug(*patch.Title)
		if err != nil {
			return domain.Job{}, err
		}
		newSlug = &slug
	}

	if err := j.storage.UpdateJob(id, patch, newSlug); err != nil {
		return domain.Job{}, err
	}
	logger.Log.Info("job updated", "operation", "update_job", "job_id", id, "org_id", actor.Id)

	return j.storage.JobById(id)
}

func (j *Job) Delete(id domain.JobId, actor domain.Claims) error {
	if _, err := j.owned(id, actor); err != nil {
		return err
	}
	if err := j.storage.DeleteJob(id); err != nil {
		return err
	}
	logger.Log.Info("job deleted", "operation", "delete_job", "job_id", id, "org_id", actor.Id)
	return nil
}

// BySlug returns a posting for public detail view with the description
// rendered to sanitized html.
func (j *Job) BySlug(slug domain.Slug) (domain.Job, error) {
	job, err := j.storage.JobBySlug(slug)
	if err != nil {
		return domain.Job{}, err
	}

	html, err := j.renderer.Render(job.Description)
	if err != nil {
		logger.Log.Error("failed to render job description", "operation", "job_detail", "job_id", job.Id, "error", err)
		return domain.Job{}, err
	}
	job.DescriptionHTML = html
	return job, nil
}

func (j *Job) ByOrganization(orgId domain.UserId, page int) (domain.JobPage, error) {
	page = max(1, page)
	pageSize := j.cfg.Public.JobsPerPage

	jobs, count, err := j.storage.JobsByOrganization(orgId, (page-1)*pageSize, pageSize)
	if err != nil {
		return domain.JobPage{}, err
	}

	totalPages := (count + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return domain.JobPage{
		Jobs:        jobs,
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}, nil
}

func (j *Job) Categories() ([]domain.Category, error) {
	return j.storage.Categories()
}

// Apply records a job seeker's application against an active posting.
func (j *Job) Apply(jobId domain.JobId, actor domain.Claims, message string) error {
	if actor.Role != domain.RoleJobSeeker {
		return &errors.ErrorWithStatusCode{Message: "Only job seekers can apply to jobs", StatusCode: http.StatusForbidden}
	}

	job, err := j.storage.JobById(jobId)
	if err != nil {
		return err
	}
	if !job.IsActive {
		return &errors.ErrorWithStatusCode{Message: "Job is no longer accepting applications", StatusCode: http.StatusBadRequest}
	}

	if err := j.storage.SaveApplication(domain.Application{JobId: jobId, UserId: actor.Id, Message: message}); err != nil {
		return err
	}
	logger.Log.Info("application submitted", "operation", "apply", "job_id", jobId, "user_id", actor.Id)
	return nil
}

// owned fetches the job and checks the actor is the posting organization.
func (j *Job) owned(id domain.JobId, actor domain.Claims) (domain.Job, error) {
	job, err := j.storage.JobById(id)
	if err != nil {
		return domain.Job{}, err
	}
	if actor.Role != domain.RoleOrganization || job.OrganizationId != actor.Id {
		return domain.Job{}, ErrNotJobOwner
	}
	return job, nil
}

// uniqueSlug slugifies the title and appends -2, -3, ... until no collision.
func (j *Job) uniqueSlug(title domain.JobTitle) (domain.Slug, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "job"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := j.storage.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

var ErrNotJobOwner = &errors.ErrorWithStatusCode{Message: "You do not have permission to modify this job.", StatusCode: http.StatusForbidden}
