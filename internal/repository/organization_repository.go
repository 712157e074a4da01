package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// OrganizationFilter captures listing parameters for tenants.
type OrganizationFilter struct {
	SearchTerm      *string
	IncludeDeleted  bool
	IncludePlatform bool
	Limit           int
	Offset          int
}

// OrganizationRepository manages tenant persistence.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	Update(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	// GetByIDAny reads regardless of tombstone state; used by the context
	// extractor and restore flows.
	GetByIDAny(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context, filter OrganizationFilter) ([]domain.Organization, error)
	ExistsActiveName(ctx context.Context, name, excludeID string) (bool, error)
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository builds the repository.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

const organizationColumns = `id, name, industry, is_platform, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	const query = `
        INSERT INTO organizations (name, industry, is_platform)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		org.Name,
		org.Industry,
		org.IsPlatform,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	const query = `
        UPDATE organizations SET name=$1, industry=$2, updated_at=NOW()
        WHERE id=$3 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, org.Name, org.Industry, org.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE id=$1 AND is_deleted = FALSE`, organizationColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *organizationRepository) GetByIDAny(ctx context.Context, id string) (*domain.Organization, error) {
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE id=$1`, organizationColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *organizationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&org.ID,
		&org.Name,
		&org.Industry,
		&org.IsPlatform,
		&org.CreatedAt,
		&org.UpdatedAt,
		&org.IsDeleted,
		&org.DeletedAt,
		&org.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context, filter OrganizationFilter) ([]domain.Organization, error) {
	clauses := []string{"1=1"}
	args := []any{}

	// The platform sentinel never shows up in customer-facing listings.
	if !filter.IncludePlatform {
		clauses = append(clauses, "is_platform = FALSE")
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		organizationColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Organization
	for rows.Next() {
		var org domain.Organization
		if err := rows.Scan(
			&org.ID,
			&org.Name,
			&org.Industry,
			&org.IsPlatform,
			&org.CreatedAt,
			&org.UpdatedAt,
			&org.IsDeleted,
			&org.DeletedAt,
			&org.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, org)
	}
	return result, rows.Err()
}

func (r *organizationRepository) ExistsActiveName(ctx context.Context, name, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM organizations
            WHERE LOWER(name)=LOWER($1) AND is_deleted = FALSE
              AND ($2 = '' OR id <> $2::uuid)
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, name, excludeID).Scan(&exists)
	return exists, err
}
