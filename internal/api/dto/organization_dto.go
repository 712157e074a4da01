package dto

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// UpdateOrganizationRequest payload.
type UpdateOrganizationRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

// OrganizationResponse representation.
type OrganizationResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Industry  string     `json:"industry,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// FromOrganization converts the domain record.
func FromOrganization(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Industry:  org.Industry,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
		IsDeleted: org.IsDeleted,
		DeletedAt: org.DeletedAt,
	}
}
