package domain

import "time"

// Department is the second isolation boundary inside an organization.
// Names are unique per organization among active rows.
type Department struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
