package domain

import "time"

// Material is a stock item tracked per department. Names are unique per
// organization among active rows.
type Material struct {
	ID             string
	OrganizationID string
	DepartmentID   string
	CreatedBy      string
	Name           string
	Unit           string
	Quantity       float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
