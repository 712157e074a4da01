package events

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEntityTombstoned  EventType = "entity_tombstoned"
	EventEntityRestored    EventType = "entity_restored"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskAssigned      EventType = "task_assigned"
)

// Event represents a domain event emitted by the lifecycle engine and the
// services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	Kind           domain.Kind `json:"kind,omitempty"`
	EntityID       string      `json:"entity_id"`
	OrganizationID string      `json:"organization_id,omitempty"`
	ActorID        *string     `json:"actor_id,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload,omitempty"`
}

// EntityTombstonedPayload payload.
type EntityTombstonedPayload struct {
	CascadedKinds []domain.Kind `json:"cascaded_kinds,omitempty"`
	CascadedCount int           `json:"cascaded_count"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
	Notes     string            `json:"notes,omitempty"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	AssigneeIDs []string `json:"assignee_ids"`
}
