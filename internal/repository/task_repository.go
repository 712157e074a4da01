package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// TaskFilter captures listing parameters for tasks.
type TaskFilter struct {
	OrganizationID string
	DepartmentID   *string
	CreatedBy      *string
	Status         *domain.TaskStatus
	Variant        *domain.TaskVariant
	SearchTerm     *string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// TaskRepository manages task persistence. Variant payloads are stored as
// jsonb so the three shapes share one table without a column explosion.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByIDAny(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository builds the repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, organization_id, department_id, created_by, title, description, status, due_date, variant, routine_payload, assigned_payload, project_payload, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (organization_id, department_id, created_by, title, description, status, due_date, variant, routine_payload, assigned_payload, project_payload)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.OrganizationID,
		task.DepartmentID,
		task.CreatedBy,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
		task.Variant,
		task.Routine,
		task.Assigned,
		task.Project,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, due_date=$3, routine_payload=$4, assigned_payload=$5, project_payload=$6, updated_at=NOW()
        WHERE id=$7 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query,
		task.Title,
		task.Description,
		task.DueDate,
		task.Routine,
		task.Assigned,
		task.Project,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	const query = `UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id=$1 AND is_deleted = FALSE`, taskColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *taskRepository) GetByIDAny(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id=$1`, taskColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *taskRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Task, error) {
	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&task.ID,
		&task.OrganizationID,
		&task.DepartmentID,
		&task.CreatedBy,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.Variant,
		&task.Routine,
		&task.Assigned,
		&task.Project,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.IsDeleted,
		&task.DeletedAt,
		&task.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	args := []any{filter.OrganizationID}
	clauses := []string{"organization_id=$1"}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Variant != nil {
		args = append(args, *filter.Variant)
		clauses = append(clauses, fmt.Sprintf("variant=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		taskColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.OrganizationID,
			&task.DepartmentID,
			&task.CreatedBy,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.DueDate,
			&task.Variant,
			&task.Routine,
			&task.Assigned,
			&task.Project,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.IsDeleted,
			&task.DeletedAt,
			&task.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}
