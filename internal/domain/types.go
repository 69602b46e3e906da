package domain

type (
	Email    = string
	Password = string
	UserId   = int64

	JobId    = int64
	JobTitle = string
	Slug     = string
)
