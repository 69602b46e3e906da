package api

// Request DTOs

type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Location    string   `json:"location" validate:"required,max=200"`
	CategoryId  int64    `json:"category_id" validate:"required"`
	TagIds      []int64  `json:"tags_ids,omitempty"`
	Salary      *float64 `json:"salary,omitempty"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	CategoryId  *int64   `json:"category_id,omitempty"`
	TagIds      []int64  `json:"tags_ids,omitempty"`
	Salary      *float64 `json:"salary,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type ApplyRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// Response DTOs

type CategoryResponse struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type TagResponse struct {
	Id    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type OrganizationResponse struct {
	Id               int64  `json:"id"`
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Website          string `json:"website,omitempty"`
}

type ApplicantResponse struct {
	Id        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type JobResponse struct {
	Id              int64                 `json:"id"`
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	DescriptionHTML string                `json:"description_html,omitempty"`
	Location        string                `json:"location"`
	Salary          *float64              `json:"salary,omitempty"`
	IsActive        bool                  `json:"is_active"`
	Category        *CategoryResponse     `json:"category,omitempty"`
	Tags            []TagResponse         `json:"tags"`
	Organization    *OrganizationResponse `json:"organization,omitempty"`
	Applicants      []ApplicantResponse   `json:"applicants,omitempty"`
	CreatedAt       string                `json:"created_at"`
	UpdatedAt       string                `json:"updated_at"`
}

// JobPageResponse mirrors the paginated list envelope.
type JobPageResponse struct {
	Count       int           `json:"count"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	PageSize    int           `json:"page_size"`
	Next        *int          `json:"next"`
	Previous    *int          `json:"previous"`
	Results     []JobResponse `json:"results"`
}
