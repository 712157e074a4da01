package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/authz"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/events"
	"github.com/girmesh03/Task-Manager-V19/internal/lifecycle"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// CreateTaskInput carries common fields plus exactly one variant payload.
type CreateTaskInput struct {
	DepartmentID string
	Title        string
	Description  string
	DueDate      *time.Time
	Variant      domain.TaskVariant
	Routine      *domain.RoutinePayload
	Assigned     *domain.AssignedPayload
	Project      *domain.ProjectPayload
}

// UpdateTaskInput carries mutable common fields and the variant payload. The
// variant itself is immutable after creation.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Routine     *domain.RoutinePayload
	Assigned    *domain.AssignedPayload
	Project     *domain.ProjectPayload
}

// ChangeTaskStatusInput carries a status transition with optional notes.
type ChangeTaskStatusInput struct {
	Status domain.TaskStatus
	Notes  string
}

// TaskService manages tasks and their child records.
type TaskService struct {
	tasks       repository.TaskRepository
	activities  repository.TaskActivityRepository
	comments    repository.TaskCommentRepository
	attachments repository.AttachmentRepository
	users       repository.UserRepository
	lifecycle   *lifecycle.Engine
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewTaskService wires the service.
func NewTaskService(
	tasks repository.TaskRepository,
	activities repository.TaskActivityRepository,
	comments repository.TaskCommentRepository,
	attachments repository.AttachmentRepository,
	users repository.UserRepository,
	engine *lifecycle.Engine,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:       tasks,
		activities:  activities,
		comments:    comments,
		attachments: attachments,
		users:       users,
		lifecycle:   engine,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Create builds a task of one of the three variants. Non-HOD actors may only
// create tasks in their own department.
func (s *TaskService) Create(ctx context.Context, actor authz.Context, input CreateTaskInput) (*domain.Task, error) {
	// The prospective task is owned by the actor, so the target carries the
	// actor's own id.
	target := authz.Target(actor.ActorID, actor.TenantID, input.DepartmentID)
	if !authz.Authorize(actor, authz.ActionCreate, domain.KindTask, &target) {
		return nil, util.NewForbidden()
	}
	if input.DepartmentID != actor.SubtenantID && !actor.IsHOD {
		return nil, util.NewForbidden()
	}

	if input.Variant == domain.TaskVariantAssigned && input.Assigned != nil {
		if err := s.validateAssignees(ctx, actor, input.Assigned.AssigneeIDs); err != nil {
			return nil, err
		}
	}

	task, err := domain.NewTask(actor.TenantID, input.DepartmentID, actor.ActorID,
		input.Title, input.Description, input.Variant,
		input.Routine, input.Assigned, input.Project)
	if err != nil {
		return nil, util.NewValidationError(err.Error(), nil)
	}
	task.DueDate = input.DueDate

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, util.MapError(err)
	}

	if task.Variant == domain.TaskVariantAssigned {
		s.publish(ctx, events.Event{
			ID:             uuid.NewString(),
			Type:           events.EventTaskAssigned,
			Kind:           domain.KindTask,
			EntityID:       task.ID,
			OrganizationID: task.OrganizationID,
			ActorID:        &actor.ActorID,
			Timestamp:      time.Now().UTC(),
			Payload:        events.TaskAssignedPayload{AssigneeIDs: task.Assigned.AssigneeIDs},
		})
	}
	return task, nil
}

// Get returns one task.
func (s *TaskService) Get(ctx context.Context, actor authz.Context, id string) (*domain.Task, error) {
	task, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionRead, domain.KindTask, taskTarget(task)) {
		return nil, util.NewForbidden()
	}
	return task, nil
}

// List returns tasks in the actor's organization.
func (s *TaskService) List(ctx context.Context, actor authz.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	if !authz.Authorize(actor, authz.ActionRead, domain.KindTask, nil) {
		return nil, util.NewForbidden()
	}
	filter.OrganizationID = actor.TenantID
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return tasks, nil
}

// Update modifies a task's common fields and variant payload. The variant
// discriminator never changes.
func (s *TaskService) Update(ctx context.Context, actor authz.Context, id string, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindTask, taskTarget(task)) {
		return nil, util.NewForbidden()
	}

	if input.Variant() != "" && input.Variant() != task.Variant {
		return nil, util.NewValidationError("task variant cannot change", map[string]any{"variant": string(task.Variant)})
	}
	if input.Assigned != nil {
		if err := s.validateAssignees(ctx, actor, input.Assigned.AssigneeIDs); err != nil {
			return nil, err
		}
	}

	// Revalidate through the constructor so payload invariants hold on update
	// exactly as they do on create.
	updated, err := domain.NewTask(task.OrganizationID, task.DepartmentID, task.CreatedBy,
		input.Title, input.Description, task.Variant,
		pickRoutine(input.Routine, task.Routine),
		pickAssigned(input.Assigned, task.Assigned),
		pickProject(input.Project, task.Project))
	if err != nil {
		return nil, util.NewValidationError(err.Error(), nil)
	}

	task.Title = updated.Title
	task.Description = updated.Description
	task.DueDate = input.DueDate
	task.Routine = updated.Routine
	task.Assigned = updated.Assigned
	task.Project = updated.Project

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, util.MapError(err)
	}
	return task, nil
}

// ChangeStatus transitions a task's status, records an activity snapshot, and
// emits an event for notification fan-out.
func (s *TaskService) ChangeStatus(ctx context.Context, actor authz.Context, id string, input ChangeTaskStatusInput) (*domain.Task, error) {
	if !domain.ValidTaskStatus(input.Status) {
		return nil, util.NewValidationError("unknown task status", map[string]any{"status": string(input.Status)})
	}

	task, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionUpdate, domain.KindTask, taskTarget(task)) {
		return nil, util.NewForbidden()
	}
	if task.Status == input.Status {
		return task, nil
	}

	oldStatus := task.Status
	if err := s.tasks.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, util.MapError(err)
	}
	task.Status = input.Status

	activity := &domain.TaskActivity{
		TaskID:         task.ID,
		OrganizationID: task.OrganizationID,
		PerformedBy:    actor.ActorID,
		Notes:          strings.TrimSpace(input.Notes),
		StatusSnapshot: input.Status,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		// The status change already committed; the missing log entry is
		// recoverable, the transition is not worth rolling back.
		s.logger.Error("status activity write failed",
			zap.String("task_id", task.ID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		ID:             uuid.NewString(),
		Type:           events.EventTaskStatusChanged,
		Kind:           domain.KindTask,
		EntityID:       task.ID,
		OrganizationID: task.OrganizationID,
		ActorID:        &actor.ActorID,
		Timestamp:      time.Now().UTC(),
		Payload: events.TaskStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: input.Status,
			Notes:     strings.TrimSpace(input.Notes),
		},
	})
	return task, nil
}

// SoftDelete tombstones a task and cascades to activities, comments, and
// attachments.
func (s *TaskService) SoftDelete(ctx context.Context, actor authz.Context, id string) error {
	task, err := s.loadAny(ctx, id)
	if err != nil {
		return err
	}
	if !authz.Authorize(actor, authz.ActionDelete, domain.KindTask, taskTarget(task)) {
		return util.NewForbidden()
	}
	return s.lifecycle.SoftDelete(ctx, domain.KindTask, id, &actor.ActorID)
}

// Restore clears a task's tombstone. Children stay tombstoned.
func (s *TaskService) Restore(ctx context.Context, actor authz.Context, id string) (*domain.Task, error) {
	task, err := s.loadAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(actor, authz.ActionRestore, domain.KindTask, taskTarget(task)) {
		return nil, util.NewForbidden()
	}
	if err := s.lifecycle.Restore(ctx, domain.KindTask, id); err != nil {
		return nil, err
	}
	return s.loadActive(ctx, id)
}

func (s *TaskService) loadActive(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("task", nil)
		}
		return nil, util.MapError(err)
	}
	return task, nil
}

func (s *TaskService) loadAny(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("task", nil)
		}
		return nil, util.MapError(err)
	}
	return task, nil
}

// validateAssignees rejects assignees outside the actor's organization or
// pointing at deactivated users.
func (s *TaskService) validateAssignees(ctx context.Context, actor authz.Context, assigneeIDs []string) error {
	for _, assigneeID := range assigneeIDs {
		assignee, err := s.users.GetByID(ctx, assigneeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return util.NewValidationError("assignee not found", map[string]any{"assignee_id": assigneeID})
			}
			return util.MapError(err)
		}
		if assignee.OrganizationID != actor.TenantID {
			return util.NewValidationError("assignee outside organization", map[string]any{"assignee_id": assigneeID})
		}
	}
	return nil
}

func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func taskTarget(task *domain.Task) *authz.TargetRef {
	target := authz.Target(task.CreatedBy, task.OrganizationID, task.DepartmentID)
	return &target
}

// Variant reports the variant implied by the payloads present on an update.
func (in UpdateTaskInput) Variant() domain.TaskVariant {
	switch {
	case in.Routine != nil:
		return domain.TaskVariantRoutine
	case in.Assigned != nil:
		return domain.TaskVariantAssigned
	case in.Project != nil:
		return domain.TaskVariantProject
	}
	return ""
}

func pickRoutine(next, current *domain.RoutinePayload) *domain.RoutinePayload {
	if next != nil {
		return next
	}
	return current
}

func pickAssigned(next, current *domain.AssignedPayload) *domain.AssignedPayload {
	if next != nil {
		return next
	}
	return current
}

func pickProject(next, current *domain.ProjectPayload) *domain.ProjectPayload {
	if next != nil {
		return next
	}
	return current
}
