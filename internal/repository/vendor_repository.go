package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// VendorFilter captures listing parameters for vendors.
type VendorFilter struct {
	OrganizationID string
	SearchTerm     *string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// VendorRepository manages supplier persistence.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	Update(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	GetByIDAny(ctx context.Context, id string) (*domain.Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]domain.Vendor, error)
	ExistsActiveName(ctx context.Context, organizationID, name, excludeID string) (bool, error)
}

type vendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository builds the repository.
func NewVendorRepository(pool *pgxpool.Pool) VendorRepository {
	return &vendorRepository{pool: pool}
}

const vendorColumns = `id, organization_id, created_by, name, contact_email, contact_phone, address, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *vendorRepository) Create(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        INSERT INTO vendors (organization_id, created_by, name, contact_email, contact_phone, address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		vendor.OrganizationID,
		vendor.CreatedBy,
		vendor.Name,
		vendor.ContactEmail,
		vendor.ContactPhone,
		vendor.Address,
	).Scan(&vendor.ID, &vendor.CreatedAt, &vendor.UpdatedAt)
}

func (r *vendorRepository) Update(ctx context.Context, vendor *domain.Vendor) error {
	const query = `
        UPDATE vendors SET name=$1, contact_email=$2, contact_phone=$3, address=$4, updated_at=NOW()
        WHERE id=$5 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query,
		vendor.Name,
		vendor.ContactEmail,
		vendor.ContactPhone,
		vendor.Address,
		vendor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vendorRepository) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE id=$1 AND is_deleted = FALSE`, vendorColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *vendorRepository) GetByIDAny(ctx context.Context, id string) (*domain.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE id=$1`, vendorColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *vendorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Vendor, error) {
	var vendor domain.Vendor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&vendor.ID,
		&vendor.OrganizationID,
		&vendor.CreatedBy,
		&vendor.Name,
		&vendor.ContactEmail,
		&vendor.ContactPhone,
		&vendor.Address,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
		&vendor.IsDeleted,
		&vendor.DeletedAt,
		&vendor.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter) ([]domain.Vendor, error) {
	args := []any{filter.OrganizationID}
	clauses := []string{"organization_id=$1"}

	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.SearchTerm))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		vendorColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Vendor
	for rows.Next() {
		var vendor domain.Vendor
		if err := rows.Scan(
			&vendor.ID,
			&vendor.OrganizationID,
			&vendor.CreatedBy,
			&vendor.Name,
			&vendor.ContactEmail,
			&vendor.ContactPhone,
			&vendor.Address,
			&vendor.CreatedAt,
			&vendor.UpdatedAt,
			&vendor.IsDeleted,
			&vendor.DeletedAt,
			&vendor.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, vendor)
	}
	return result, rows.Err()
}

func (r *vendorRepository) ExistsActiveName(ctx context.Context, organizationID, name, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM vendors
            WHERE organization_id=$1 AND LOWER(name)=LOWER($2) AND is_deleted = FALSE
              AND ($3 = '' OR id <> $3::uuid)
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, organizationID, name, excludeID).Scan(&exists)
	return exists, err
}
