package domain

import (
	"errors"
	"strings"
	"time"
)

// TaskVariant discriminates the three task shapes stored in one collection.
type TaskVariant string

const (
	TaskVariantRoutine  TaskVariant = "ROUTINE"
	TaskVariantAssigned TaskVariant = "ASSIGNED"
	TaskVariantProject  TaskVariant = "PROJECT"
)

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusPending    TaskStatus = "PENDING"
)

// ValidTaskStatus reports whether s is a known status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted, TaskStatusPending:
		return true
	}
	return false
}

// RoutinePayload holds fields specific to recurring maintenance tasks.
type RoutinePayload struct {
	DatePerformed time.Time `json:"date_performed"`
	Recurrence    string    `json:"recurrence,omitempty"`
}

// AssignedPayload holds fields specific to tasks delegated to users.
type AssignedPayload struct {
	AssigneeIDs []string `json:"assignee_ids"`
}

// ProjectPayload holds fields specific to client project work.
type ProjectPayload struct {
	ClientName  string     `json:"client_name"`
	ClientPhone string     `json:"client_phone,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
}

// Task is the aggregate for work items. Exactly one of the three payloads is
// set, matching Variant.
type Task struct {
	ID             string
	OrganizationID string
	DepartmentID   string
	CreatedBy      string
	Title          string
	Description    string
	Status         TaskStatus
	DueDate        *time.Time
	Variant        TaskVariant
	Routine        *RoutinePayload
	Assigned       *AssignedPayload
	Project        *ProjectPayload
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Tombstone
}

var (
	errTaskTitle   = errors.New("task title required")
	errTaskVariant = errors.New("unknown task variant")
)

// NewTask validates the variant payload exhaustively and returns the task.
// Exactly the payload matching the variant must be present.
func NewTask(orgID, deptID, createdBy, title, description string, variant TaskVariant,
	routine *RoutinePayload, assigned *AssignedPayload, project *ProjectPayload) (*Task, error) {

	if strings.TrimSpace(title) == "" {
		return nil, errTaskTitle
	}

	task := &Task{
		OrganizationID: orgID,
		DepartmentID:   deptID,
		CreatedBy:      createdBy,
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Status:         TaskStatusToDo,
		Variant:        variant,
	}

	switch variant {
	case TaskVariantRoutine:
		if routine == nil || assigned != nil || project != nil {
			return nil, errors.New("routine task requires exactly the routine payload")
		}
		if routine.DatePerformed.IsZero() {
			return nil, errors.New("routine task requires date_performed")
		}
		task.Routine = routine
	case TaskVariantAssigned:
		if assigned == nil || routine != nil || project != nil {
			return nil, errors.New("assigned task requires exactly the assignee payload")
		}
		if len(assigned.AssigneeIDs) == 0 {
			return nil, errors.New("assigned task requires at least one assignee")
		}
		task.Assigned = assigned
	case TaskVariantProject:
		if project == nil || routine != nil || assigned != nil {
			return nil, errors.New("project task requires exactly the project payload")
		}
		if strings.TrimSpace(project.ClientName) == "" {
			return nil, errors.New("project task requires client_name")
		}
		task.Project = project
	default:
		return nil, errTaskVariant
	}

	return task, nil
}
