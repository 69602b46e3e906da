package domain

import "time"

// Role discriminates the two account variants. It is a closed set:
// a user is either a job seeker or an organization, never both.
type Role string

const (
	RoleJobSeeker    Role = "job_seeker"
	RoleOrganization Role = "organization"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleOrganization
}

// Profile carries the role-conditioned fields. Personal names are populated
// only for job seekers, organization fields only for organizations.
type Profile struct {
	FirstName        string
	LastName         string
	OrganizationName string
	Website          string
}

type User struct {
	Id        UserId
	Email     Email
	PassHash  string
	Role      Role
	Profile   Profile
	IsActive  bool
	CreatedAt time.Time
}

// Claims is the decoded access-token identity placed in request context.
type Claims struct {
	Id    UserId
	Email Email
	Role  Role
}
