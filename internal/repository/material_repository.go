package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// MaterialFilter captures listing parameters for materials.
type MaterialFilter struct {
	OrganizationID string
	DepartmentID   *string
	SearchTerm     *string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// MaterialRepository manages stock item persistence.
type MaterialRepository interface {
	Create(ctx context.Context, material *domain.Material) error
	Update(ctx context.Context, material *domain.Material) error
	GetByID(ctx context.Context, id string) (*domain.Material, error)
	GetByIDAny(ctx context.Context, id string) (*domain.Material, error)
	List(ctx context.Context, filter MaterialFilter) ([]domain.Material, error)
	ExistsActiveName(ctx context.Context, organizationID, name, excludeID string) (bool, error)
}

type materialRepository struct {
	pool *pgxpool.Pool
}

// NewMaterialRepository builds the repository.
func NewMaterialRepository(pool *pgxpool.Pool) MaterialRepository {
	return &materialRepository{pool: pool}
}

const materialColumns = `id, organization_id, department_id, created_by, name, unit, quantity, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *materialRepository) Create(ctx context.Context, material *domain.Material) error {
	const query = `
        INSERT INTO materials (organization_id, department_id, created_by, name, unit, quantity)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		material.OrganizationID,
		material.DepartmentID,
		material.CreatedBy,
		material.Name,
		material.Unit,
		material.Quantity,
	).Scan(&material.ID, &material.CreatedAt, &material.UpdatedAt)
}

func (r *materialRepository) Update(ctx context.Context, material *domain.Material) error {
	const query = `
        UPDATE materials SET name=$1, unit=$2, quantity=$3, updated_at=NOW()
        WHERE id=$4 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, material.Name, material.Unit, material.Quantity, material.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*domain.Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE id=$1 AND is_deleted = FALSE`, materialColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *materialRepository) GetByIDAny(ctx context.Context, id string) (*domain.Material, error) {
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE id=$1`, materialColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *materialRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Material, error) {
	var material domain.Material
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&material.ID,
		&material.OrganizationID,
		&material.DepartmentID,
		&material.CreatedBy,
		&material.Name,
		&material.Unit,
		&material.Quantity,
		&material.CreatedAt,
		&material.UpdatedAt,
		&material.IsDeleted,
		&material.DeletedAt,
		&material.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) List(ctx context.Context, filter MaterialFilter) ([]domain.Material, error) {
	args := []any{filter.OrganizationID}
	clauses := []string{"organization_id=$1"}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		materialColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Material
	for rows.Next() {
		var material domain.Material
		if err := rows.Scan(
			&material.ID,
			&material.OrganizationID,
			&material.DepartmentID,
			&material.CreatedBy,
			&material.Name,
			&material.Unit,
			&material.Quantity,
			&material.CreatedAt,
			&material.UpdatedAt,
			&material.IsDeleted,
			&material.DeletedAt,
			&material.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, material)
	}
	return result, rows.Err()
}

func (r *materialRepository) ExistsActiveName(ctx context.Context, organizationID, name, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM materials
            WHERE organization_id=$1 AND LOWER(name)=LOWER($2) AND is_deleted = FALSE
              AND ($3 = '' OR id <> $3::uuid)
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, organizationID, name, excludeID).Scan(&exists)
	return exists, err
}
