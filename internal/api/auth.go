package api

// Request DTOs

type RegisterRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8"`
	ConfirmPassword  string `json:"confirm_password" validate:"required,min=8"`
	Role             string `json:"role" validate:"required"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	Website          string `json:"website,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PasswordResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	OrganizationName *string `json:"organization_name,omitempty"`
	Website          *string `json:"website,omitempty"`
}

// Response DTOs

type UserResponse struct {
	Id               int64  `json:"id"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	Website          string `json:"website,omitempty"`
	IsActive         bool   `json:"is_active"`
	DateJoined       string `json:"date_joined"`
}

type LoginResponse struct {
	Status      string       `json:"status"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

type RefreshResponse struct {
	Status      string `json:"status"`
	AccessToken string `json:"access_token"`
}
