package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// DepartmentFilter captures listing parameters for departments.
type DepartmentFilter struct {
	OrganizationID string
	SearchTerm     *string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	GetByIDAny(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]domain.Department, error)
	ExistsActiveName(ctx context.Context, organizationID, name, excludeID string) (bool, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

const departmentColumns = `id, organization_id, name, description, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (organization_id, name, description)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.OrganizationID,
		dept.Name,
		dept.Description,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, dept.Name, dept.Description, dept.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM departments WHERE id=$1 AND is_deleted = FALSE`, departmentColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *departmentRepository) GetByIDAny(ctx context.Context, id string) (*domain.Department, error) {
	query := fmt.Sprintf(`SELECT %s FROM departments WHERE id=$1`, departmentColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *departmentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Department, error) {
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&dept.ID,
		&dept.OrganizationID,
		&dept.Name,
		&dept.Description,
		&dept.CreatedAt,
		&dept.UpdatedAt,
		&dept.IsDeleted,
		&dept.DeletedAt,
		&dept.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, filter DepartmentFilter) ([]domain.Department, error) {
	args := []any{filter.OrganizationID}
	clauses := []string{"organization_id=$1"}

	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM departments WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		departmentColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(
			&dept.ID,
			&dept.OrganizationID,
			&dept.Name,
			&dept.Description,
			&dept.CreatedAt,
			&dept.UpdatedAt,
			&dept.IsDeleted,
			&dept.DeletedAt,
			&dept.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

func (r *departmentRepository) ExistsActiveName(ctx context.Context, organizationID, name, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM departments
            WHERE organization_id=$1 AND LOWER(name)=LOWER($2) AND is_deleted = FALSE
              AND ($3 = '' OR id <> $3::uuid)
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, organizationID, name, excludeID).Scan(&exists)
	return exists, err
}
