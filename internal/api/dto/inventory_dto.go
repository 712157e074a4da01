package dto

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// MaterialRequest payload for create and update.
type MaterialRequest struct {
	DepartmentID string  `json:"department_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
}

// MaterialResponse representation.
type MaterialResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	DepartmentID   string     `json:"department_id"`
	CreatedBy      string     `json:"created_by"`
	Name           string     `json:"name"`
	Unit           string     `json:"unit,omitempty"`
	Quantity       float64    `json:"quantity"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	IsDeleted      bool       `json:"is_deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// FromMaterial converts the domain record.
func FromMaterial(material *domain.Material) MaterialResponse {
	return MaterialResponse{
		ID:             material.ID,
		OrganizationID: material.OrganizationID,
		DepartmentID:   material.DepartmentID,
		CreatedBy:      material.CreatedBy,
		Name:           material.Name,
		Unit:           material.Unit,
		Quantity:       material.Quantity,
		CreatedAt:      material.CreatedAt,
		UpdatedAt:      material.UpdatedAt,
		IsDeleted:      material.IsDeleted,
		DeletedAt:      material.DeletedAt,
	}
}

// VendorRequest payload for create and update.
type VendorRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

// VendorResponse representation.
type VendorResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	CreatedBy      string     `json:"created_by"`
	Name           string     `json:"name"`
	ContactEmail   string     `json:"contact_email,omitempty"`
	ContactPhone   string     `json:"contact_phone,omitempty"`
	Address        string     `json:"address,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	IsDeleted      bool       `json:"is_deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// FromVendor converts the domain record.
func FromVendor(vendor *domain.Vendor) VendorResponse {
	return VendorResponse{
		ID:             vendor.ID,
		OrganizationID: vendor.OrganizationID,
		CreatedBy:      vendor.CreatedBy,
		Name:           vendor.Name,
		ContactEmail:   vendor.ContactEmail,
		ContactPhone:   vendor.ContactPhone,
		Address:        vendor.Address,
		CreatedAt:      vendor.CreatedAt,
		UpdatedAt:      vendor.UpdatedAt,
		IsDeleted:      vendor.IsDeleted,
		DeletedAt:      vendor.DeletedAt,
	}
}
