package domain

import "time"

// Attachment stores metadata for a file linked to a task. Blob hosting is an
// external collaborator; only the storage key lives here.
type Attachment struct {
	ID             string
	TaskID         string
	OrganizationID string
	UploadedBy     string
	StorageKey     string
	FileName       string
	MimeType       string
	SizeBytes      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
