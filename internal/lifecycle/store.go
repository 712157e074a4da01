package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// ErrNotFound is returned by stores when the addressed record does not exist.
var ErrNotFound = errors.New("lifecycle: record not found")

// TombstoneState is the engine's read view of a record's tombstone.
type TombstoneState struct {
	Deleted   bool
	DeletedAt *time.Time
	DeletedBy *string
}

// Store is the persistence surface the engine operates against. The pgx
// implementation lives in the repository package; tests use an in-memory
// fake.
type Store interface {
	// GetTombstone reads a record's tombstone regardless of deletion state.
	GetTombstone(ctx context.Context, kind domain.Kind, id string) (TombstoneState, error)

	// Tombstone stamps a single active record. Returns false when the record
	// was already tombstoned.
	Tombstone(ctx context.Context, kind domain.Kind, id string, at time.Time, by *string) (bool, error)

	// TombstoneChildren stamps all active records of kind whose foreignKey
	// column equals parentID, returning the ids it touched.
	TombstoneChildren(ctx context.Context, kind domain.Kind, foreignKey, parentID string, at time.Time, by *string) ([]string, error)

	// ClearTombstone resets a tombstoned record to active.
	ClearTombstone(ctx context.Context, kind domain.Kind, id string) error

	// HasRestoreConflict reports whether an active record holds the same
	// unique key as the tombstoned record id. Kinds without unique keys
	// always report false.
	HasRestoreConflict(ctx context.Context, kind domain.Kind, id string) (bool, error)

	// DeleteExpired permanently removes tombstoned records of kind whose
	// deleted_at precedes the cutoff. Returns the number of rows removed.
	DeleteExpired(ctx context.Context, kind domain.Kind, cutoff time.Time) (int64, error)

	// Delete permanently removes one record. Only the engine's explicit
	// bypass path calls this.
	Delete(ctx context.Context, kind domain.Kind, id string) error

	// SupportsTx reports whether InTx provides real transactional grouping.
	SupportsTx() bool

	// InTx runs fn against a transactional view of the store when supported,
	// committing on nil and rolling back on error.
	InTx(ctx context.Context, fn func(Store) error) error
}
