package dto

import (
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// CreateTaskRequest payload. Exactly one variant payload must be present and
// must match the variant discriminator.
type CreateTaskRequest struct {
	DepartmentID string                  `json:"department_id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	DueDate      *time.Time              `json:"due_date"`
	Variant      domain.TaskVariant      `json:"variant"`
	Routine      *domain.RoutinePayload  `json:"routine,omitempty"`
	Assigned     *domain.AssignedPayload `json:"assigned,omitempty"`
	Project      *domain.ProjectPayload  `json:"project,omitempty"`
}

// UpdateTaskRequest payload. The variant is immutable.
type UpdateTaskRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	DueDate     *time.Time              `json:"due_date"`
	Routine     *domain.RoutinePayload  `json:"routine,omitempty"`
	Assigned    *domain.AssignedPayload `json:"assigned,omitempty"`
	Project     *domain.ProjectPayload  `json:"project,omitempty"`
}

// ChangeTaskStatusRequest payload.
type ChangeTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
	Notes  string            `json:"notes"`
}

// TaskResponse representation.
type TaskResponse struct {
	ID             string                  `json:"id"`
	OrganizationID string                  `json:"organization_id"`
	DepartmentID   string                  `json:"department_id"`
	CreatedBy      string                  `json:"created_by"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description,omitempty"`
	Status         domain.TaskStatus       `json:"status"`
	DueDate        *time.Time              `json:"due_date,omitempty"`
	Variant        domain.TaskVariant      `json:"variant"`
	Routine        *domain.RoutinePayload  `json:"routine,omitempty"`
	Assigned       *domain.AssignedPayload `json:"assigned,omitempty"`
	Project        *domain.ProjectPayload  `json:"project,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
	IsDeleted      bool                    `json:"is_deleted"`
	DeletedAt      *time.Time              `json:"deleted_at,omitempty"`
}

// FromTask converts the domain record.
func FromTask(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		OrganizationID: task.OrganizationID,
		DepartmentID:   task.DepartmentID,
		CreatedBy:      task.CreatedBy,
		Title:          task.Title,
		Description:    task.Description,
		Status:         task.Status,
		DueDate:        task.DueDate,
		Variant:        task.Variant,
		Routine:        task.Routine,
		Assigned:       task.Assigned,
		Project:        task.Project,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		IsDeleted:      task.IsDeleted,
		DeletedAt:      task.DeletedAt,
	}
}

// TaskActivityRequest payload.
type TaskActivityRequest struct {
	Notes string `json:"notes"`
}

// TaskActivityResponse representation.
type TaskActivityResponse struct {
	ID             string            `json:"id"`
	TaskID         string            `json:"task_id"`
	PerformedBy    string            `json:"performed_by"`
	Notes          string            `json:"notes"`
	StatusSnapshot domain.TaskStatus `json:"status_snapshot"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// FromTaskActivity converts the domain record.
func FromTaskActivity(activity *domain.TaskActivity) TaskActivityResponse {
	return TaskActivityResponse{
		ID:             activity.ID,
		TaskID:         activity.TaskID,
		PerformedBy:    activity.PerformedBy,
		Notes:          activity.Notes,
		StatusSnapshot: activity.StatusSnapshot,
		CreatedAt:      activity.CreatedAt,
		UpdatedAt:      activity.UpdatedAt,
	}
}

// TaskCommentRequest payload.
type TaskCommentRequest struct {
	Body string `json:"body"`
}

// TaskCommentResponse representation.
type TaskCommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromTaskComment converts the domain record.
func FromTaskComment(comment *domain.TaskComment) TaskCommentResponse {
	return TaskCommentResponse{
		ID:        comment.ID,
		TaskID:    comment.TaskID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// AttachmentRequest payload.
type AttachmentRequest struct {
	StorageKey string `json:"storage_key"`
	FileName   string `json:"file_name"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes"`
}

// AttachmentResponse representation.
type AttachmentResponse struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	UploadedBy string    `json:"uploaded_by"`
	StorageKey string    `json:"storage_key"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type,omitempty"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromAttachment converts the domain record.
func FromAttachment(attachment *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         attachment.ID,
		TaskID:     attachment.TaskID,
		UploadedBy: attachment.UploadedBy,
		StorageKey: attachment.StorageKey,
		FileName:   attachment.FileName,
		MimeType:   attachment.MimeType,
		SizeBytes:  attachment.SizeBytes,
		CreatedAt:  attachment.CreatedAt,
	}
}
