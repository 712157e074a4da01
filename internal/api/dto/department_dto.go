package dto

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// DepartmentRequest payload for create and update.
type DepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DepartmentResponse representation.
type DepartmentResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	IsDeleted      bool       `json:"is_deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// FromDepartment converts the domain record.
func FromDepartment(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             dept.ID,
		OrganizationID: dept.OrganizationID,
		Name:           dept.Name,
		Description:    dept.Description,
		CreatedAt:      dept.CreatedAt,
		UpdatedAt:      dept.UpdatedAt,
		IsDeleted:      dept.IsDeleted,
		DeletedAt:      dept.DeletedAt,
	}
}
