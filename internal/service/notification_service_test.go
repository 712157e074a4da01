package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/events"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
)

type fakeNotificationRepo struct {
	created []domain.Notification
	read    []string
	allRead []string
	unread  int64
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = "n-" + n.RecipientID
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, _ string) (*domain.Notification, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	out := make([]domain.Notification, 0)
	for _, n := range f.created {
		if n.RecipientID == filter.RecipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, _ string) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) error {
	f.allRead = append(f.allRead, recipientID)
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, _ string) (int64, error) {
	return f.unread, nil
}

type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func (f *fakeTaskRepo) Create(_ context.Context, _ *domain.Task) error   { return nil }
func (f *fakeTaskRepo) Update(_ context.Context, _ *domain.Task) error   { return nil }
func (f *fakeTaskRepo) UpdateStatus(_ context.Context, _ string, _ domain.TaskStatus) error {
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.Deleted() {
		return nil, pgx.ErrNoRows
	}
	return task, nil
}

func (f *fakeTaskRepo) GetByIDAny(_ context.Context, id string) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return task, nil
}

func (f *fakeTaskRepo) List(_ context.Context, _ repository.TaskFilter) ([]domain.Task, error) {
	return nil, nil
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(_ context.Context, n *domain.Notification) error {
	f.published = append(f.published, n.RecipientID)
	return nil
}

func assignedTask(id, creator string, assignees ...string) *domain.Task {
	return &domain.Task{
		ID:             id,
		OrganizationID: "org-1",
		DepartmentID:   "dept-1",
		CreatedBy:      creator,
		Title:          "replace pump seals",
		Status:         domain.TaskStatusInProgress,
		Variant:        domain.TaskVariantAssigned,
		Assigned:       &domain.AssignedPayload{AssigneeIDs: assignees},
	}
}

func TestStatusChangeNotifiesCreatorAndAssigneesOnce(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	// u-2 is both an assignee and the event actor, u-1 appears twice.
	tasks := &fakeTaskRepo{tasks: map[string]*domain.Task{
		"t-1": assignedTask("t-1", "u-1", "u-1", "u-2", "u-3"),
	}}
	publisher := &fakePublisher{}
	svc := NewNotificationService(notifications, tasks, publisher, zap.NewNop())

	dispatcher := events.NewInMemoryDispatcher()
	svc.SubscribeTo(dispatcher)

	actor := "u-2"
	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTaskStatusChanged,
		Kind:     domain.KindTask,
		EntityID: "t-1",
		ActorID:  &actor,
		Payload: events.TaskStatusChangedPayload{
			OldStatus: domain.TaskStatusInProgress,
			NewStatus: domain.TaskStatusCompleted,
		},
	})
	require.NoError(t, err)

	recipients := make([]string, 0, len(notifications.created))
	for _, n := range notifications.created {
		recipients = append(recipients, n.RecipientID)
		assert.Equal(t, domain.NotificationTaskStatusChanged, n.Type)
		assert.Equal(t, "org-1", n.OrganizationID)
		assert.Equal(t, "COMPLETED", n.Payload["new_status"])
	}
	assert.ElementsMatch(t, []string{"u-1", "u-3"}, recipients)
	assert.ElementsMatch(t, []string{"u-1", "u-3"}, publisher.published)
}

func TestStatusChangeOnMissingTaskIsSilent(t *testing.T) {
	tombstoned := assignedTask("t-gone", "u-1", "u-2")
	require.NoError(t, tombstoned.Stamp(time.Now(), nil))

	notifications := &fakeNotificationRepo{}
	tasks := &fakeTaskRepo{tasks: map[string]*domain.Task{"t-gone": tombstoned}}
	svc := NewNotificationService(notifications, tasks, nil, zap.NewNop())

	for _, id := range []string{"missing", "t-gone"} {
		err := svc.onTaskStatusChanged(context.Background(), events.Event{
			Type:     events.EventTaskStatusChanged,
			EntityID: id,
		})
		require.NoError(t, err)
	}
	assert.Empty(t, notifications.created)
}

func TestAssignmentNotifiesNewAssigneesOnly(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	tasks := &fakeTaskRepo{tasks: map[string]*domain.Task{
		"t-1": assignedTask("t-1", "u-1", "u-2", "u-3"),
	}}
	svc := NewNotificationService(notifications, tasks, nil, zap.NewNop())

	actor := "u-1"
	err := svc.onTaskAssigned(context.Background(), events.Event{
		Type:     events.EventTaskAssigned,
		EntityID: "t-1",
		ActorID:  &actor,
		Payload:  events.TaskAssignedPayload{AssigneeIDs: []string{"u-1", "u-2"}},
	})
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "u-2", notifications.created[0].RecipientID)
	assert.Equal(t, domain.NotificationTaskAssigned, notifications.created[0].Type)
}

func TestRestoreFanOutIsTaskOnly(t *testing.T) {
	notifications := &fakeNotificationRepo{}
	tasks := &fakeTaskRepo{tasks: map[string]*domain.Task{
		"t-1": assignedTask("t-1", "u-1", "u-2"),
	}}
	svc := NewNotificationService(notifications, tasks, nil, zap.NewNop())

	err := svc.onEntityRestored(context.Background(), events.Event{
		Type:     events.EventEntityRestored,
		Kind:     domain.KindDepartment,
		EntityID: "dept-1",
	})
	require.NoError(t, err)
	assert.Empty(t, notifications.created)

	err = svc.onEntityRestored(context.Background(), events.Event{
		Type:     events.EventEntityRestored,
		Kind:     domain.KindTask,
		EntityID: "t-1",
	})
	require.NoError(t, err)

	recipients := make([]string, 0, len(notifications.created))
	for _, n := range notifications.created {
		recipients = append(recipients, n.RecipientID)
		assert.Equal(t, domain.NotificationEntityRestored, n.Type)
	}
	assert.ElementsMatch(t, []string{"u-1", "u-2"}, recipients)
}
