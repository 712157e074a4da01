package domain

import "time"

// Organization is the top-level tenant isolation boundary. The platform
// organization is a reserved sentinel whose members may act across tenants;
// it never appears in customer-facing listings.
type Organization struct {
	ID         string
	Name       string
	Industry   string
	IsPlatform bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Tombstone
}
