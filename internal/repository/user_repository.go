package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// UserFilter captures listing parameters for users.
type UserFilter struct {
	OrganizationID string
	DepartmentID   *string
	Role           *domain.Role
	SearchTerm     *string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// UserRepository defines persistence access for actors.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByIDAny(ctx context.Context, id string) (*domain.User, error)
	// ListActiveByEmail returns every active user holding the email, oldest
	// first. Email uniqueness is per organization, so one address may map to
	// accounts in several tenants.
	ListActiveByEmail(ctx context.Context, email string) ([]domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	ExistsActiveEmail(ctx context.Context, organizationID, email, excludeID string) (bool, error)
	// ExistsActiveHODPosition checks the compound uniqueness of position
	// labels among active HOD-role users of one department.
	ExistsActiveHODPosition(ctx context.Context, departmentID, position, excludeID string) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, organization_id, department_id, first_name, last_name, email, password_hash, role, position, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (organization_id, department_id, first_name, last_name, email, password_hash, role, position)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.OrganizationID,
		user.DepartmentID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Position,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET department_id=$1, first_name=$2, last_name=$3, email=$4, role=$5, position=$6, updated_at=NOW()
        WHERE id=$7 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query,
		user.DepartmentID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Role,
		user.Position,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2 AND is_deleted = FALSE`
	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1 AND is_deleted = FALSE`, userColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByIDAny(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id=$1`, userColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) ListActiveByEmail(ctx context.Context, email string) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email)=LOWER($1) AND is_deleted = FALSE ORDER BY created_at ASC`, userColumns)
	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.OrganizationID,
			&user.DepartmentID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.Position,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.IsDeleted,
			&user.DeletedAt,
			&user.DeletedBy,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.OrganizationID,
		&user.DepartmentID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Position,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.IsDeleted,
		&user.DeletedAt,
		&user.DeletedBy,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.User, error) {
	args := []any{filter.OrganizationID}
	clauses := []string{"organization_id=$1"}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(first_name) LIKE %s OR LOWER(last_name) LIKE %s OR LOWER(email) LIKE %s)", placeholder, placeholder, placeholder))
	}
	clauses = withVisibility(clauses, filter.IncludeDeleted)

	limit, offset := clampPage(filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		userColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.OrganizationID,
			&user.DepartmentID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.Position,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.IsDeleted,
			&user.DeletedAt,
			&user.DeletedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) ExistsActiveEmail(ctx context.Context, organizationID, email, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM users
            WHERE organization_id=$1 AND LOWER(email)=LOWER($2) AND is_deleted = FALSE
              AND ($3 = '' OR id <> $3::uuid)
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, organizationID, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *userRepository) ExistsActiveHODPosition(ctx context.Context, departmentID, position, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM users
            WHERE department_id=$1 AND LOWER(position)=LOWER($2)
              AND role IN ('SUPER_ADMIN','ADMIN') AND is_deleted = FALSE
              AND ($3 = '' OR id <> $3::uuid)
        )`
	var exists bool
	err := r.pool.QueryRow(ctx, query, departmentID, position, excludeID).Scan(&exists)
	return exists, err
}
