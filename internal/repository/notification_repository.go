package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// NotificationFilter captures listing parameters for one recipient's inbox.
type NotificationFilter struct {
	RecipientID    string
	UnreadOnly     bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// NotificationRepository manages the durable notification inbox.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds the repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

const notificationColumns = `id, organization_id, recipient_id, type, payload, read, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const query = `
        INSERT INTO notifications (organization_id, recipient_id, type, payload)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		notification.OrganizationID,
		notification.RecipientID,
		notification.Type,
		notification.Payload,
	).Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id=$1 AND is_deleted = FALSE`, notificationColumns)
	var n domain.Notification
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.OrganizationID,
		&n.RecipientID,
		&n.Type,
		&n.Payload,
		&n.Read,
		&n.CreatedAt,
		&n.UpdatedAt,
		&n.IsDeleted,
		&n.DeletedAt,
		&n.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, filter NotificationFilter) ([]domain.Notification, error) {
	args := []any{filter.RecipientID}
	clauses := []string{"recipient_id=$1"}

	if filter.UnreadOnly {
		clauses = append(clauses, "read = FALSE")
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		notificationColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.OrganizationID,
			&n.RecipientID,
			&n.Type,
			&n.Payload,
			&n.Read,
			&n.CreatedAt,
			&n.UpdatedAt,
			&n.IsDeleted,
			&n.DeletedAt,
			&n.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	const query = `
        UPDATE notifications SET read = TRUE, updated_at=NOW()
        WHERE id=$1 AND recipient_id=$2 AND is_deleted = FALSE`
	_, err := r.pool.Exec(ctx, query, id, recipientID)
	return err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	const query = `
        UPDATE notifications SET read = TRUE, updated_at=NOW()
        WHERE recipient_id=$1 AND read = FALSE AND is_deleted = FALSE`
	_, err := r.pool.Exec(ctx, query, recipientID)
	return err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE recipient_id=$1 AND read = FALSE AND is_deleted = FALSE`
	var count int64
	err := r.pool.QueryRow(ctx, query, recipientID).Scan(&count)
	return count, err
}
