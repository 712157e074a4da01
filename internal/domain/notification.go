package domain

import "time"

// NotificationType enumerates notification categories.
type NotificationType string

const (
	NotificationTaskStatusChanged NotificationType = "TASK_STATUS_CHANGED"
	NotificationEntityTombstoned  NotificationType = "ENTITY_TOMBSTONED"
	NotificationEntityRestored    NotificationType = "ENTITY_RESTORED"
	NotificationTaskAssigned      NotificationType = "TASK_ASSIGNED"
)

// Notification is a per-recipient message. Delivery transport is out of
// scope; rows are the durable record, the sink handles push.
type Notification struct {
	ID             string
	OrganizationID string
	RecipientID    string
	Type           NotificationType
	Payload        map[string]any
	Read           bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}
