package dto

import "time"

// RegisterRequest bootstraps a tenant with its first department and admin.
type RegisterRequest struct {
	OrganizationName string `json:"organization_name"`
	Industry         string `json:"industry"`
	DepartmentName   string `json:"department_name"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Position         string `json:"position"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest payload.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// SessionResponse returns the authenticated actor. The token itself travels
// in the HTTP-only cookie, not the body.
type SessionResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}
