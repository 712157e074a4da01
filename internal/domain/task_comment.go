package domain

import "time"

// TaskComment is a threaded remark on a task.
type TaskComment struct {
	ID             string
	TaskID         string
	OrganizationID string
	AuthorID       string
	Body           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
