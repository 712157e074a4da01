package domain

import "time"

// TaskActivity records one unit of work performed against a task, including
// the status the task held when the activity was logged.
type TaskActivity struct {
	ID             string
	TaskID         string
	OrganizationID string
	PerformedBy    string
	Notes          string
	StatusSnapshot TaskStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
