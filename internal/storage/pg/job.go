package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"github.com/jobdeck-dev/jobdeck/internal/domain"
	internal_errors "github.com/jobdeck-dev/jobdeck/internal/errors"
)

var errJobNotFound = &internal_errors.ErrorWithStatusCode{Message: "Job not found", StatusCode: http.StatusNotFound}

// =========================================================================
// Public Methods (satisfy the service.JobStorage interface)
// =========================================================================

// CreateJob inserts the posting and its tag links atomically.
func (s *Storage) CreateJob(job domain.Job) (domain.JobId, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var id domain.JobId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRow(`
			INSERT INTO jobs(organization_id, category_id, title, slug, description, location, salary, is_active)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
			job.OrganizationId, job.CategoryId, job.Title, job.Slug, job.Description, job.Location, job.Salary, job.IsActive).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert job: %w", err)
		}
		return s.replaceTags(tx, id, tagIds(job.Tags))
	})
	return id, err
}

func (s *Storage) JobById(id domain.JobId) (domain.Job, error) {
	return s.job(s.db, "j.id = $1", id)
}

func (s *Storage) JobBySlug(slug domain.Slug) (domain.Job, error) {
	return s.job(s.db, "j.slug = $1", slug)
}

// JobsByOrganization returns one page of an organization's postings, newest
// first, plus the total count for pagination.
func (s *Storage) JobsByOrganization(orgId domain.UserId, offset, limit int) ([]domain.Job, int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE organization_id = $1", orgId).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT j.id, j.organization_id, j.category_id, j.title, j.slug, j.description, j.location, j.salary, j.is_active, j.created_at, j.updated_at,
		       c.id, c.title, c.slug
		FROM jobs j JOIN categories c ON c.id = j.category_id
		WHERE j.organization_id = $1
		ORDER BY j.created_at DESC
		OFFSET $2 LIMIT $3`, orgId, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range jobs {
		if err := s.enrichJob(s.db, &jobs[i]); err != nil {
			return nil, 0, err
		}
	}
	return jobs, count, nil
}

// UpdateJob applies the non-nil patch fields. newSlug is set by the service
// when the title changed.
func (s *Storage) UpdateJob(id domain.JobId, patch domain.JobPatch, newSlug *domain.Slug) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		set := []string{"updated_at = NOW()"}
		args := []any{id}

		add := func(column string, value any) {
			args = append(args, value)
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
		}

		if patch.Title != nil {
			add("title", *patch.Title)
		}
		if newSlug != nil {
			add("slug", *newSlug)
		}
		if patch.Description != nil {
			add("description", *patch.Description)
		}
		if patch.Location != nil {
			add("location", *patch.Location)
		}
		if patch.CategoryId != nil {
			add("category_id", *patch.CategoryId)
		}
		if patch.Salary != nil {
			add("salary", *patch.Salary)
		}
		if patch.IsActive != nil {
			add("is_active", *patch.IsActive)
		}

		res, err := tx.Exec("UPDATE jobs SET "+strings.Join(set, ", ")+" WHERE id = $1", args...)
		if err != nil {
			return fmt.Errorf("failed to update job: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errJobNotFound
		}

		if patch.TagIds != nil {
			return s.replaceTags(tx, id, patch.TagIds)
		}
		return nil
	})
}

func (s *Storage) DeleteJob(id domain.JobId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM jobs WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete job: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return errJobNotFound
		}
		return nil
	})
}

func (s *Storage) Categories() ([]domain.Category, error) {
	rows, err := s.db.Query("SELECT id, title, slug, created_at FROM categories ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Id, &c.Title, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) SaveApplication(app domain.Application) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO job_applications(job_id, user_id, message) VALUES($1, $2, $3)",
			app.JobId, app.UserId, app.Message)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return &internal_errors.ErrorWithStatusCode{Message: "You have already applied to this job", StatusCode: http.StatusBadRequest}
			}
			return fmt.Errorf("failed to save application: %w", err)
		}
		return nil
	})
}

func (s *Storage) SlugExists(slug domain.Slug) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM jobs WHERE slug = $1)", slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (domain.Job, error) {
	var job domain.Job
	var category domain.Category
	err := row.Scan(&job.Id, &job.OrganizationId, &job.CategoryId, &job.Title, &job.Slug,
		&job.Description, &job.Location, &job.Salary, &job.IsActive, &job.CreatedAt, &job.UpdatedAt,
		&category.Id, &category.Title, &category.Slug)
	if err != nil {
		return domain.Job{}, err
	}
	job.Category = &category
	return job, nil
}

func (s *Storage) job(q Querier, where string, arg any) (domain.Job, error) {
	row := q.QueryRow(`
		SELECT j.id, j.organization_id, j.category_id, j.title, j.slug, j.description, j.location, j.salary, j.is_active, j.created_at, j.updated_at,
		       c.id, c.title, c.slug
		FROM jobs j JOIN categories c ON c.id = j.category_id
		WHERE `+where, arg)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Job{}, errJobNotFound
		}
		return domain.Job{}, fmt.Errorf("failed to query job: %w", err)
	}

	if err := s.enrichJob(q, &job); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

// enrichJob loads the posting organization, tags and applicants.
func (s *Storage) enrichJob(q Querier, job *domain.Job) error {
	org, err := s.user(q, "id = $1", job.OrganizationId)
	if err != nil {
		return err
	}
	job.Organization = &org

	rows, err := q.Query(`
		SELECT t.id, t.title, t.slug FROM tags t
		JOIN job_tags jt ON jt.tag_id = t.id WHERE jt.job_id = $1`, job.Id)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.Id, &t.Title, &t.Slug); err != nil {
			return err
		}
		job.Tags = append(job.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	appRows, err := q.Query(`
		SELECT u.id, u.email, u.first_name, u.last_name FROM users u
		JOIN job_applications a ON a.user_id = u.id WHERE a.job_id = $1
		ORDER BY a.created_at`, job.Id)
	if err != nil {
		return fmt.Errorf("failed to query applicants: %w", err)
	}
	defer appRows.Close()
	for appRows.Next() {
		var u domain.User
		if err := appRows.Scan(&u.Id, &u.Email, &u.Profile.FirstName, &u.Profile.LastName); err != nil {
			return err
		}
		u.Role = domain.RoleJobSeeker
		job.Applicants = append(job.Applicants, u)
	}
	return appRows.Err()
}

func (s *Storage) replaceTags(tx *sql.Tx, jobId domain.JobId, tagIds []int64) error {
	if _, err := tx.Exec("DELETE FROM job_tags WHERE job_id = $1", jobId); err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}
	for _, tagId := range tagIds {
		if _, err := tx.Exec("INSERT INTO job_tags(job_id, tag_id) VALUES($1, $2)", jobId, tagId); err != nil {
			return fmt.Errorf("failed to link tag %d: %w", tagId, err)
		}
	}
	return nil
}

func tagIds(tags []domain.Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.Id)
	}
	return ids
}
