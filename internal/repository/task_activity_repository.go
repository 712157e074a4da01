package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// TaskActivityFilter captures listing parameters for activities on one task.
type TaskActivityFilter struct {
	TaskID         string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// TaskActivityRepository manages activity log persistence.
type TaskActivityRepository interface {
	Create(ctx context.Context, activity *domain.TaskActivity) error
	Update(ctx context.Context, activity *domain.TaskActivity) error
	GetByID(ctx context.Context, id string) (*domain.TaskActivity, error)
	GetByIDAny(ctx context.Context, id string) (*domain.TaskActivity, error)
	ListByTask(ctx context.Context, filter TaskActivityFilter) ([]domain.TaskActivity, error)
}

type taskActivityRepository struct {
	pool *pgxpool.Pool
}

// NewTaskActivityRepository builds the repository.
func NewTaskActivityRepository(pool *pgxpool.Pool) TaskActivityRepository {
	return &taskActivityRepository{pool: pool}
}

const taskActivityColumns = `id, task_id, organization_id, performed_by, notes, status_snapshot, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *taskActivityRepository) Create(ctx context.Context, activity *domain.TaskActivity) error {
	const query = `
        INSERT INTO task_activities (task_id, organization_id, performed_by, notes, status_snapshot)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		activity.TaskID,
		activity.OrganizationID,
		activity.PerformedBy,
		activity.Notes,
		activity.StatusSnapshot,
	).Scan(&activity.ID, &activity.CreatedAt, &activity.UpdatedAt)
}

func (r *taskActivityRepository) Update(ctx context.Context, activity *domain.TaskActivity) error {
	const query = `
        UPDATE task_activities SET notes=$1, updated_at=NOW()
        WHERE id=$2 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, activity.Notes, activity.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskActivityRepository) GetByID(ctx context.Context, id string) (*domain.TaskActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM task_activities WHERE id=$1 AND is_deleted = FALSE`, taskActivityColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *taskActivityRepository) GetByIDAny(ctx context.Context, id string) (*domain.TaskActivity, error) {
	query := fmt.Sprintf(`SELECT %s FROM task_activities WHERE id=$1`, taskActivityColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *taskActivityRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.TaskActivity, error) {
	var activity domain.TaskActivity
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&activity.ID,
		&activity.TaskID,
		&activity.OrganizationID,
		&activity.PerformedBy,
		&activity.Notes,
		&activity.StatusSnapshot,
		&activity.CreatedAt,
		&activity.UpdatedAt,
		&activity.IsDeleted,
		&activity.DeletedAt,
		&activity.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *taskActivityRepository) ListByTask(ctx context.Context, filter TaskActivityFilter) ([]domain.TaskActivity, error) {
	args := []any{filter.TaskID}
	clauses := []string{"task_id=$1"}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM task_activities WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		taskActivityColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskActivity
	for rows.Next() {
		var activity domain.TaskActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.TaskID,
			&activity.OrganizationID,
			&activity.PerformedBy,
			&activity.Notes,
			&activity.StatusSnapshot,
			&activity.CreatedAt,
			&activity.UpdatedAt,
			&activity.IsDeleted,
			&activity.DeletedAt,
			&activity.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
