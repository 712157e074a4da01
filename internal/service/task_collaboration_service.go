package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/girmesh03/Task-Manager-V19/internal/authz"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// Child records of a task (activities, comments, attachments) are authorized
// through the parent task's ownership references; a record's own author takes
// precedence for the own scope.

// AddActivity logs manual work against a task.
func (s *TaskService) AddActivity(ctx context.Context, actor authz.Context, taskID, notes string) (*domain.TaskActivity, error) {
	task, err := s.loadActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindTaskActivity, childTarget(actor.ActorID, task)) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(notes) == "" {
		return nil, util.NewValidationError("activity notes required", nil)
	}

	activity := &domain.TaskActivity{
		TaskID:         task.ID,
		OrganizationID: task.OrganizationID,
		PerformedBy:    actor.ActorID,
		Notes:          strings.TrimSpace(notes),
		StatusSnapshot: task.Status,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, util.MapError(err)
	}
	return activity, nil
}

// ListActivities returns a task's activity log.
func (s *TaskService) ListActivities(ctx context.Context, actor authz.Context, taskID string, filter repository.TaskActivityFilter) ([]domain.TaskActivity, error) {
	task, err := s.loadActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionRead, domain.KindTaskActivity, taskTarget(task)) {
		return nil, util.NewForbidden()
	}
	filter.TaskID = task.ID
	activities, err := s.activities.ListByTask(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return activities, nil
}

// UpdateActivity edits an activity's notes.
func (s *TaskService) UpdateActivity(ctx context.Context, actor authz.Context, id, notes string) (*domain.TaskActivity, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("task activity", nil)
		}
		return nil, util.MapError(err)
	}

	task, err := s.loadActive(ctx, activity.TaskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindTaskActivity, childTarget(activity.PerformedBy, task)) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(notes) == "" {
		return nil, util.NewValidationError("activity notes required", nil)
	}

	activity.Notes = strings.TrimSpace(notes)
	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, util.MapError(err)
	}
	return activity, nil
}

// DeleteActivity tombstones one activity.
func (s *TaskService) DeleteActivity(ctx context.Context, actor authz.Context, id string) error {
	activity, err := s.activities.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("task activity", nil)
		}
		return util.MapError(err)
	}

	task, err := s.loadAny(ctx, activity.TaskID)
	if err != nil {
		return err
	}
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindTaskActivity, childTarget(activity.PerformedBy, task)) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindTaskActivity, id, &actor.ActorID)
}

// AddComment posts a comment on a task.
func (s *TaskService) AddComment(ctx context.Context, actor authz.Context, taskID, body string) (*domain.TaskComment, error) {
	task, err := s.loadActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindTaskComment, childTarget(actor.ActorID, task)) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(body) == "" {
		return nil, util.NewValidationError("comment body required", nil)
	}

	comment := &domain.TaskComment{
		TaskID:         task.ID,
		OrganizationID: task.OrganizationID,
		AuthorID:       actor.ActorID,
		Body:           strings.TrimSpace(body),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, util.MapError(err)
	}
	return comment, nil
}

// ListComments returns a task's comments, oldest first.
func (s *TaskService) ListComments(ctx context.Context, actor authz.Context, taskID string, filter repository.TaskCommentFilter) ([]domain.TaskComment, error) {
	task, err := s.loadActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionRead, domain.KindTaskComment, taskTarget(task)) {
		return nil, util.NewForbidden()
	}
	filter.TaskID = task.ID
	comments, err := s.comments.ListByTask(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return comments, nil
}

// UpdateComment edits a comment body.
func (s *TaskService) UpdateComment(ctx context.Context, actor authz.Context, id, body string) (*domain.TaskComment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("task comment", nil)
		}
		return nil, util.MapError(err)
	}

	task, err := s.loadActive(ctx, comment.TaskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindTaskComment, childTarget(comment.AuthorID, task)) {
		return nil, util.NewForbidden()
	}
	if strings.TrimSpace(body) == "" {
		return nil, util.NewValidationError("comment body required", nil)
	}

	comment.Body = strings.TrimSpace(body)
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, util.MapError(err)
	}
	return comment, nil
}

// DeleteComment tombstones one comment.
func (s *TaskService) DeleteComment(ctx context.Context, actor authz.Context, id string) error {
	comment, err := s.comments.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("task comment", nil)
		}
		return util.MapError(err)
	}

	task, err := s.loadAny(ctx, comment.TaskID)
	if err != nil {
		return err
	}
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindTaskComment, childTarget(comment.AuthorID, task)) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindTaskComment, id, &actor.ActorID)
}

// AttachmentInput carries file metadata; the blob itself lives in external
// storage under StorageKey.
type AttachmentInput struct {
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
}

// AddAttachment records file metadata against a task.
func (s *TaskService) AddAttachment(ctx context.Context, actor authz.Context, taskID string, input AttachmentInput) (*domain.Attachment, error) {
	task, err := s.loadActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindAttachment, childTarget(actor.ActorID, task)) {
		return nil, util.NewForbidden()
	}

	details := map[string]any{}
	if strings.TrimSpace(input.StorageKey) == "" {
		details["storage_key"] = "required"
	}
	if strings.TrimSpace(input.FileName) == "" {
		details["file_name"] = "required"
	}
	if input.SizeBytes <= 0 {
		details["size_bytes"] = "must be positive"
	}
	if len(details) > 0 {
		return nil, util.NewValidationError("invalid attachment payload", details)
	}

	attachment := &domain.Attachment{
		TaskID:         task.ID,
		OrganizationID: task.OrganizationID,
		UploadedBy:     actor.ActorID,
		StorageKey:     strings.TrimSpace(input.StorageKey),
		FileName:       strings.TrimSpace(input.FileName),
		MimeType:       strings.TrimSpace(input.MimeType),
		SizeBytes:      input.SizeBytes,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, util.MapError(err)
	}
	return attachment, nil
}

// ListAttachments returns a task's attachments.
func (s *TaskService) ListAttachments(ctx context.Context, actor authz.Context, taskID string, filter repository.AttachmentFilter) ([]domain.Attachment, error) {
	task, err := s.loadActive(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionRead, domain.KindAttachment, taskTarget(task)) {
		return nil, util.NewForbidden()
	}
	filter.TaskID = task.ID
	attachments, err := s.attachments.ListByTask(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return attachments, nil
}

// DeleteAttachment tombstones one attachment.
func (s *TaskService) DeleteAttachment(ctx context.Context, actor authz.Context, id string) error {
	attachment, err := s.attachments.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewNotFound("attachment", nil)
		}
		return util.MapError(err)
	}

	task, err := s.loadAny(ctx, attachment.TaskID)
	if err != nil {
		return err
	}
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindAttachment, childTarget(attachment.UploadedBy, task)) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindAttachment, id, &actor.ActorID)
}

// childTarget scopes a task child record: the record's own author for the own
// check, the parent task's tenant and department otherwise.
func childTarget(ownerID string, task *domain.Task) *authz.TargetRef {
	target := authz.Target(ownerID, task.OrganizationID, task.DepartmentID)
	return &target
}
