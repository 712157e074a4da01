package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// AttachmentFilter captures listing parameters for attachments on one task.
type AttachmentFilter struct {
	TaskID         string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// AttachmentRepository manages attachment metadata persistence.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	GetByIDAny(ctx context.Context, id string) (*domain.Attachment, error)
	ListByTask(ctx context.Context, filter AttachmentFilter) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository builds the repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

const attachmentColumns = `id, task_id, organization_id, uploaded_by, storage_key, file_name, mime_type, size_bytes, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (task_id, organization_id, uploaded_by, storage_key, file_name, mime_type, size_bytes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		attachment.TaskID,
		attachment.OrganizationID,
		attachment.UploadedBy,
		attachment.StorageKey,
		attachment.FileName,
		attachment.MimeType,
		attachment.SizeBytes,
	).Scan(&attachment.ID, &attachment.CreatedAt, &attachment.UpdatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	query := fmt.Sprintf(`SELECT %s FROM attachments WHERE id=$1 AND is_deleted = FALSE`, attachmentColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *attachmentRepository) GetByIDAny(ctx context.Context, id string) (*domain.Attachment, error) {
	query := fmt.Sprintf(`SELECT %s FROM attachments WHERE id=$1`, attachmentColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *attachmentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&attachment.ID,
		&attachment.TaskID,
		&attachment.OrganizationID,
		&attachment.UploadedBy,
		&attachment.StorageKey,
		&attachment.FileName,
		&attachment.MimeType,
		&attachment.SizeBytes,
		&attachment.CreatedAt,
		&attachment.UpdatedAt,
		&attachment.IsDeleted,
		&attachment.DeletedAt,
		&attachment.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepository) ListByTask(ctx context.Context, filter AttachmentFilter) ([]domain.Attachment, error) {
	args := []any{filter.TaskID}
	clauses := []string{"task_id=$1"}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM attachments WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		attachmentColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TaskID,
			&attachment.OrganizationID,
			&attachment.UploadedBy,
			&attachment.StorageKey,
			&attachment.FileName,
			&attachment.MimeType,
			&attachment.SizeBytes,
			&attachment.CreatedAt,
			&attachment.UpdatedAt,
			&attachment.IsDeleted,
			&attachment.DeletedAt,
			&attachment.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
