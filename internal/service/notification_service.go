package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/authz"
	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/events"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
	"github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// Publisher pushes a persisted notification to the delivery channel. The
// Redis-backed implementation lives in the worker package.
type Publisher interface {
	Publish(ctx context.Context, notification *domain.Notification) error
}

// NotificationService persists per-recipient notifications and serves the
// inbox endpoints. It subscribes to the domain event stream; rows are the
// durable record, the publisher handles push delivery.
type NotificationService struct {
	notifications repository.NotificationRepository
	tasks         repository.TaskRepository
	publisher     Publisher
	logger        *zap.Logger
}

// NewNotificationService wires the service.
func NewNotificationService(notifications repository.NotificationRepository, tasks repository.TaskRepository, publisher Publisher, logger *zap.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, tasks: tasks, publisher: publisher, logger: logger}
}

// SubscribeTo registers the service's event handlers.
func (s *NotificationService) SubscribeTo(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTaskStatusChanged, s.onTaskStatusChanged)
	dispatcher.Subscribe(events.EventTaskAssigned, s.onTaskAssigned)
	dispatcher.Subscribe(events.EventEntityTombstoned, s.onEntityTombstoned)
	dispatcher.Subscribe(events.EventEntityRestored, s.onEntityRestored)
}

// ListMine returns the actor's inbox.
func (s *NotificationService) ListMine(ctx context.Context, actor authz.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	filter.RecipientID = actor.ActorID
	notifications, err := s.notifications.ListByRecipient(ctx, filter)
	if err != nil {
		return nil, util.MapError(err)
	}
	return notifications, nil
}

// UnreadCount returns the actor's unread badge count.
func (s *NotificationService) UnreadCount(ctx context.Context, actor authz.Context) (int64, error) {
	count, err := s.notifications.CountUnread(ctx, actor.ActorID)
	if err != nil {
		return 0, util.MapError(err)
	}
	return count, nil
}

// MarkRead marks one of the actor's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor authz.Context, id string) error {
	if err := s.notifications.MarkRead(ctx, id, actor.ActorID); err != nil {
		return util.MapError(err)
	}
	return nil
}

// MarkAllRead clears the actor's unread set.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor authz.Context) error {
	if err := s.notifications.MarkAllRead(ctx, actor.ActorID); err != nil {
		return util.MapError(err)
	}
	return nil
}

func (s *NotificationService) onTaskStatusChanged(ctx context.Context, event events.Event) error {
	task, recipients, err := s.taskRecipients(ctx, event.EntityID, event.ActorID)
	if err != nil || task == nil || len(recipients) == 0 {
		return err
	}

	payload := map[string]any{
		"task_id":    task.ID,
		"task_title": task.Title,
	}
	if typed, ok := event.Payload.(events.TaskStatusChangedPayload); ok {
		payload["old_status"] = string(typed.OldStatus)
		payload["new_status"] = string(typed.NewStatus)
	}
	s.deliver(ctx, task.OrganizationID, recipients, domain.NotificationTaskStatusChanged, payload)
	return nil
}

func (s *NotificationService) onTaskAssigned(ctx context.Context, event events.Event) error {
	task, err := s.tasks.GetByID(ctx, event.EntityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	typed, ok := event.Payload.(events.TaskAssignedPayload)
	if !ok {
		return nil
	}
	recipients := excludeActor(typed.AssigneeIDs, event.ActorID)
	s.deliver(ctx, task.OrganizationID, recipients, domain.NotificationTaskAssigned, map[string]any{
		"task_id":    task.ID,
		"task_title": task.Title,
	})
	return nil
}

func (s *NotificationService) onEntityTombstoned(ctx context.Context, event events.Event) error {
	// Only task tombstones fan out; deleting tenants or users is an
	// administrative act with no obvious recipient set. The task is already
	// tombstoned when the event fires, so the any-state lookup is required.
	if event.Kind != domain.KindTask {
		return nil
	}
	task, err := s.tasks.GetByIDAny(ctx, event.EntityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	recipients := []string{task.CreatedBy}
	if task.Assigned != nil {
		recipients = append(recipients, task.Assigned.AssigneeIDs...)
	}
	recipients = excludeActor(dedupe(recipients), event.ActorID)
	if len(recipients) == 0 {
		return nil
	}
	s.deliver(ctx, task.OrganizationID, recipients, domain.NotificationEntityTombstoned, map[string]any{
		"task_id":    task.ID,
		"task_title": task.Title,
	})
	return nil
}

func (s *NotificationService) onEntityRestored(ctx context.Context, event events.Event) error {
	// Restores mirror tombstones: tasks only.
	if event.Kind != domain.KindTask {
		return nil
	}
	task, recipients, err := s.taskRecipients(ctx, event.EntityID, event.ActorID)
	if err != nil || task == nil || len(recipients) == 0 {
		return err
	}
	s.deliver(ctx, task.OrganizationID, recipients, domain.NotificationEntityRestored, map[string]any{
		"task_id":    task.ID,
		"task_title": task.Title,
	})
	return nil
}

// taskRecipients collects the task creator plus assignees, excluding the
// actor who triggered the event.
func (s *NotificationService) taskRecipients(ctx context.Context, taskID string, actorID *string) (*domain.Task, []string, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	recipients := []string{task.CreatedBy}
	if task.Assigned != nil {
		recipients = append(recipients, task.Assigned.AssigneeIDs...)
	}
	return task, excludeActor(dedupe(recipients), actorID), nil
}

func (s *NotificationService) deliver(ctx context.Context, orgID string, recipients []string, kind domain.NotificationType, payload map[string]any) {
	for _, recipientID := range recipients {
		notification := &domain.Notification{
			OrganizationID: orgID,
			RecipientID:    recipientID,
			Type:           kind,
			Payload:        payload,
		}
		if err := s.notifications.Create(ctx, notification); err != nil {
			s.logger.Error("notification write failed",
				zap.String("recipient_id", recipientID), zap.Error(err))
			continue
		}
		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, notification); err != nil {
				s.logger.Warn("notification push failed",
					zap.String("notification_id", notification.ID), zap.Error(err))
			}
		}
	}
}

func excludeActor(ids []string, actorID *string) []string {
	if actorID == nil {
		return ids
	}
	out := ids[:0:0]
	for _, id := range ids {
		if id != *actorID {
			out = append(out, id)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
