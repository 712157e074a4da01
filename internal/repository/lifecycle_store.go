package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/lifecycle"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the lifecycle
// store can run the same statements inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (interface{ RowsAffected() int64 }, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// poolQuerier adapts *pgxpool.Pool to the querier interface; pgconn's
// CommandTag is a value type so Exec needs a thin wrapper.
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (q poolQuerier) Exec(ctx context.Context, sql string, args ...any) (interface{ RowsAffected() int64 }, error) {
	tag, err := q.pool.Exec(ctx, sql, args...)
	return tag, err
}

func (q poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.pool.Query(ctx, sql, args...)
}

func (q poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.pool.QueryRow(ctx, sql, args...)
}

type txQuerier struct {
	tx pgx.Tx
}

func (q txQuerier) Exec(ctx context.Context, sql string, args ...any) (interface{ RowsAffected() int64 }, error) {
	tag, err := q.tx.Exec(ctx, sql, args...)
	return tag, err
}

func (q txQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return q.tx.Query(ctx, sql, args...)
}

func (q txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.tx.QueryRow(ctx, sql, args...)
}

// kindTables maps entity kinds to their tables. Every table carries the
// tombstone trio.
var kindTables = map[domain.Kind]string{
	domain.KindOrganization: "organizations",
	domain.KindDepartment:   "departments",
	domain.KindUser:         "users",
	domain.KindTask:         "tasks",
	domain.KindTaskActivity: "task_activities",
	domain.KindTaskComment:  "task_comments",
	domain.KindMaterial:     "materials",
	domain.KindVendor:       "vendors",
	domain.KindAttachment:   "attachments",
	domain.KindNotification: "notifications",
}

// LifecycleStore is the Postgres implementation of lifecycle.Store.
type LifecycleStore struct {
	pool *pgxpool.Pool
	q    querier
}

// NewLifecycleStore builds the store over a connection pool.
func NewLifecycleStore(pool *pgxpool.Pool) *LifecycleStore {
	return &LifecycleStore{pool: pool, q: poolQuerier{pool: pool}}
}

func tableFor(kind domain.Kind) (string, error) {
	table, ok := kindTables[kind]
	if !ok {
		return "", fmt.Errorf("lifecycle store: unknown kind %q", kind)
	}
	return table, nil
}

func (s *LifecycleStore) GetTombstone(ctx context.Context, kind domain.Kind, id string) (lifecycle.TombstoneState, error) {
	table, err := tableFor(kind)
	if err != nil {
		return lifecycle.TombstoneState{}, err
	}
	query := fmt.Sprintf(`SELECT is_deleted, deleted_at, deleted_by FROM %s WHERE id=$1`, table)

	var state lifecycle.TombstoneState
	if err := s.q.QueryRow(ctx, query, id).Scan(&state.Deleted, &state.DeletedAt, &state.DeletedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lifecycle.TombstoneState{}, lifecycle.ErrNotFound
		}
		return lifecycle.TombstoneState{}, err
	}
	return state, nil
}

func (s *LifecycleStore) Tombstone(ctx context.Context, kind domain.Kind, id string, at time.Time, by *string) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
        UPDATE %s SET is_deleted = TRUE, deleted_at=$2, deleted_by=$3
        WHERE id=$1 AND is_deleted = FALSE`, table)

	cmd, err := s.q.Exec(ctx, query, id, at, by)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (s *LifecycleStore) TombstoneChildren(ctx context.Context, kind domain.Kind, foreignKey, parentID string, at time.Time, by *string) ([]string, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	// foreignKey comes from the static cascade table, never from callers.
	query := fmt.Sprintf(`
        UPDATE %s SET is_deleted = TRUE, deleted_at=$2, deleted_by=$3
        WHERE %s=$1 AND is_deleted = FALSE
        RETURNING id`, table, foreignKey)

	rows, err := s.q.Query(ctx, query, parentID, at, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *LifecycleStore) ClearTombstone(ctx context.Context, kind domain.Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        UPDATE %s SET is_deleted = FALSE, deleted_at=NULL, deleted_by=NULL
        WHERE id=$1 AND is_deleted = TRUE`, table)

	cmd, err := s.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

// Restore-conflict probes, one per kind that carries an active-rows unique
// key. The probe asks: does any ACTIVE row already hold the key the
// tombstoned row would reclaim?
var conflictProbes = map[domain.Kind]string{
	domain.KindOrganization: `
        SELECT EXISTS (
            SELECT 1 FROM organizations a
            JOIN organizations t ON t.id=$1
            WHERE a.is_deleted = FALSE AND a.id <> t.id
              AND LOWER(a.name)=LOWER(t.name)
        )`,
	domain.KindDepartment: `
        SELECT EXISTS (
            SELECT 1 FROM departments a
            JOIN departments t ON t.id=$1
            WHERE a.is_deleted = FALSE AND a.id <> t.id
              AND a.organization_id=t.organization_id
              AND LOWER(a.name)=LOWER(t.name)
        )`,
	domain.KindUser: `
        SELECT EXISTS (
            SELECT 1 FROM users a
            JOIN users t ON t.id=$1
            WHERE a.is_deleted = FALSE AND a.id <> t.id
              AND (
                (a.organization_id=t.organization_id AND LOWER(a.email)=LOWER(t.email))
                OR (
                    t.role IN ('SUPER_ADMIN','ADMIN') AND a.role IN ('SUPER_ADMIN','ADMIN')
                    AND a.department_id=t.department_id
                    AND LOWER(a.position)=LOWER(t.position)
                )
              )
        )`,
	domain.KindMaterial: `
        SELECT EXISTS (
            SELECT 1 FROM materials a
            JOIN materials t ON t.id=$1
            WHERE a.is_deleted = FALSE AND a.id <> t.id
              AND a.organization_id=t.organization_id
              AND LOWER(a.name)=LOWER(t.name)
        )`,
	domain.KindVendor: `
        SELECT EXISTS (
            SELECT 1 FROM vendors a
            JOIN vendors t ON t.id=$1
            WHERE a.is_deleted = FALSE AND a.id <> t.id
              AND a.organization_id=t.organization_id
              AND LOWER(a.name)=LOWER(t.name)
        )`,
}

func (s *LifecycleStore) HasRestoreConflict(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	probe, ok := conflictProbes[kind]
	if !ok {
		return false, nil
	}
	var conflict bool
	if err := s.q.QueryRow(ctx, probe, id).Scan(&conflict); err != nil {
		return false, err
	}
	return conflict, nil
}

func (s *LifecycleStore) DeleteExpired(ctx context.Context, kind domain.Kind, cutoff time.Time) (int64, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE is_deleted = TRUE AND deleted_at < $1`, table)

	cmd, err := s.q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (s *LifecycleStore) Delete(ctx context.Context, kind domain.Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, table)

	cmd, err := s.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (s *LifecycleStore) SupportsTx() bool {
	return s.pool != nil
}

func (s *LifecycleStore) InTx(ctx context.Context, fn func(lifecycle.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}

	txStore := &LifecycleStore{q: txQuerier{tx: tx}}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
