package domain

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyDeleted guards against double-stamping a tombstone.
	ErrAlreadyDeleted = errors.New("entity already deleted")
	// ErrNotDeleted guards against clearing an empty tombstone.
	ErrNotDeleted = errors.New("entity not deleted")
)

// Tombstone carries the soft-delete marker attached to every entity kind.
// Invariant: IsDeleted=false ⟺ DeletedAt=nil ⟺ DeletedBy=nil.
type Tombstone struct {
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `json:"deleted_by,omitempty"`
}

// Deleted reports whether the entity is tombstoned.
func (t Tombstone) Deleted() bool {
	return t.IsDeleted
}

// Stamp marks the tombstone, recording when and by whom. The actor is
// optional: cascaded deletes only propagate it on flagged edges.
func (t *Tombstone) Stamp(at time.Time, by *string) error {
	if t.IsDeleted {
		return ErrAlreadyDeleted
	}
	t.IsDeleted = true
	t.DeletedAt = &at
	t.DeletedBy = by
	return nil
}

// Clear resets the tombstone, making the entity active again.
func (t *Tombstone) Clear() error {
	if !t.IsDeleted {
		return ErrNotDeleted
	}
	t.IsDeleted = false
	t.DeletedAt = nil
	t.DeletedBy = nil
	return nil
}
