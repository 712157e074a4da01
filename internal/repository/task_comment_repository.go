package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// TaskCommentFilter captures listing parameters for comments on one task.
type TaskCommentFilter struct {
	TaskID         string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// TaskCommentRepository manages comment persistence.
type TaskCommentRepository interface {
	Create(ctx context.Context, comment *domain.TaskComment) error
	Update(ctx context.Context, comment *domain.TaskComment) error
	GetByID(ctx context.Context, id string) (*domain.TaskComment, error)
	GetByIDAny(ctx context.Context, id string) (*domain.TaskComment, error)
	ListByTask(ctx context.Context, filter TaskCommentFilter) ([]domain.TaskComment, error)
}

type taskCommentRepository struct {
	pool *pgxpool.Pool
}

// NewTaskCommentRepository builds the repository.
func NewTaskCommentRepository(pool *pgxpool.Pool) TaskCommentRepository {
	return &taskCommentRepository{pool: pool}
}

const taskCommentColumns = `id, task_id, organization_id, author_id, body, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *taskCommentRepository) Create(ctx context.Context, comment *domain.TaskComment) error {
	const query = `
        INSERT INTO task_comments (task_id, organization_id, author_id, body)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		comment.TaskID,
		comment.OrganizationID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *taskCommentRepository) Update(ctx context.Context, comment *domain.TaskComment) error {
	const query = `
        UPDATE task_comments SET body=$1, updated_at=NOW()
        WHERE id=$2 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, comment.Body, comment.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskCommentRepository) GetByID(ctx context.Context, id string) (*domain.TaskComment, error) {
	query := fmt.Sprintf(`SELECT %s FROM task_comments WHERE id=$1 AND is_deleted = FALSE`, taskCommentColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *taskCommentRepository) GetByIDAny(ctx context.Context, id string) (*domain.TaskComment, error) {
	query := fmt.Sprintf(`SELECT %s FROM task_comments WHERE id=$1`, taskCommentColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *taskCommentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.TaskComment, error) {
	var comment domain.TaskComment
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.OrganizationID,
		&comment.AuthorID,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.IsDeleted,
		&comment.DeletedAt,
		&comment.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *taskCommentRepository) ListByTask(ctx context.Context, filter TaskCommentFilter) ([]domain.TaskComment, error) {
	args := []any{filter.TaskID}
	clauses := []string{"task_id=$1"}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM task_comments WHERE %s ORDER BY created_at ASC LIMIT %d OFFSET %d`,
		taskCommentColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskComment
	for rows.Next() {
		var comment domain.TaskComment
		if err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.OrganizationID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.IsDeleted,
			&comment.DeletedAt,
			&comment.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
