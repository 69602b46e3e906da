package domain

import "time"

type Category struct {
	Id        int64
	Title     string
	Slug      Slug
	CreatedAt time.Time
}

type Tag struct {
	Id    int64
	Title string
	Slug  Slug
}

type Job struct {
	Id              JobId
	OrganizationId  UserId
	Organization    *User // populated on reads, nil on writes
	CategoryId      int64
	Category        *Category
	Tags            []Tag
	Title           JobTitle
	Slug            Slug
	Description     string // markdown source
	DescriptionHTML string // rendered+sanitized, populated for detail views only
	Location        string
	Salary          *float64
	IsActive        bool
	Applicants      []User
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type JobCreationData struct {
	OrganizationId UserId
	CategoryId     int64
	TagIds         []int64
	Title          JobTitle
	Description    string
	Location       string
	Salary         *float64
}

// JobPatch holds optional updates; nil fields are left untouched.
type JobPatch struct {
	CategoryId  *int64
	TagIds      []int64
	Title       *string
	Description *string
	Location    *string
	Salary      *float64
	IsActive    *bool
}

// Application is a job seeker's submission against a job posting.
type Application struct {
	JobId     JobId
	UserId    UserId
	Message   string
	CreatedAt time.Time
}

// JobPage is one page of an organization's postings.
type JobPage struct {
	Jobs        []Job
	Count       int
	TotalPages  int
	CurrentPage int
	PageSize    int
}
