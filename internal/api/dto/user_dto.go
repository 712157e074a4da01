package dto

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	DepartmentID string      `json:"department_id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	Role         domain.Role `json:"role"`
	Position     string      `json:"position"`
}

// UpdateUserRequest payload.
type UpdateUserRequest struct {
	DepartmentID string      `json:"department_id"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Email        string      `json:"email"`
	Role         domain.Role `json:"role"`
	Position     string      `json:"position"`
}

// UserResponse representation. The password hash never leaves the server.
type UserResponse struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organization_id"`
	DepartmentID   string      `json:"department_id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name,omitempty"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	Position       string      `json:"position,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	IsDeleted      bool        `json:"is_deleted"`
	DeletedAt      *time.Time  `json:"deleted_at,omitempty"`
}

// FromUser converts the domain record.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		OrganizationID: user.OrganizationID,
		DepartmentID:   user.DepartmentID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Role:           user.Role,
		Position:       user.Position,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		IsDeleted:      user.IsDeleted,
		DeletedAt:      user.DeletedAt,
	}
}
