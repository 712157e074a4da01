package domain

import "time"

// Vendor is an external supplier scoped to an organization. Names are unique
// per organization among active rows.
type Vendor struct {
	ID             string
	OrganizationID string
	CreatedBy      string
	Name           string
	ContactEmail   string
	ContactPhone   string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
