package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
	"github.com/girmesh03/Task-Manager-V19/internal/events"
	apperrors "github.com/girmesh03/Task-Manager-V19/pkg/util"
)

// Engine is the single code path for soft delete, restore, and permanent
// removal across the entity graph. Services never issue tombstone writes
// themselves.
type Engine struct {
	store      Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEngine constructs the engine.
func NewEngine(store Store, dispatcher events.Dispatcher, logger *zap.Logger) *Engine {
	return &Engine{store: store, dispatcher: dispatcher, logger: logger}
}

// SoftDelete tombstones the record and walks its cascade edges transitively
// with one shared timestamp. When the store supports transactions the whole
// tree commits atomically; otherwise the parent is stamped first and child
// failures are logged, not fatal.
func (e *Engine) SoftDelete(ctx context.Context, kind domain.Kind, id string, actorID *string) error {
	at := time.Now().UTC()
	var cascaded int

	if e.store.SupportsTx() {
		err := e.store.InTx(ctx, func(s Store) error {
			n, err := e.apply(ctx, s, kind, id, at, actorID, false)
			cascaded = n
			return err
		})
		if err != nil {
			return err
		}
	} else {
		n, err := e.apply(ctx, e.store, kind, id, at, actorID, true)
		cascaded = n
		if err != nil {
			return err
		}
	}

	e.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventEntityTombstoned,
		Kind:      kind,
		EntityID:  id,
		ActorID:   actorID,
		Timestamp: at,
		Payload:   events.EntityTombstonedPayload{CascadedCount: cascaded},
	})
	return nil
}

// apply stamps the root record, then walks the cascade. In best-effort mode
// cascade step failures are logged and skipped so the already committed
// parent stays tombstoned.
func (e *Engine) apply(ctx context.Context, s Store, kind domain.Kind, id string, at time.Time, actorID *string, bestEffort bool) (int, error) {
	ok, err := s.Tombstone(ctx, kind, id, at, actorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, apperrors.NewNotFound(resourceName(kind), nil)
		}
		return 0, apperrors.MapError(err)
	}
	if !ok {
		return 0, apperrors.NewAlreadyDeleted(resourceName(kind))
	}

	return e.cascadeFrom(ctx, s, kind, id, at, actorID, bestEffort)
}

func (e *Engine) cascadeFrom(ctx context.Context, s Store, kind domain.Kind, id string, at time.Time, actorID *string, bestEffort bool) (int, error) {
	total := 0
	for _, edge := range CascadeEdges(kind) {
		var by *string
		if edge.PropagateActor {
			by = actorID
		}

		childIDs, err := s.TombstoneChildren(ctx, edge.Target, edge.ForeignKey, id, at, by)
		if err != nil {
			if !bestEffort {
				return total, apperrors.MapError(err)
			}
			e.logger.Error("cascade step failed",
				zap.String("parent_kind", string(kind)),
				zap.String("parent_id", id),
				zap.String("child_kind", string(edge.Target)),
				zap.Error(err))
			continue
		}
		total += len(childIDs)

		if len(CascadeEdges(edge.Target)) == 0 {
			continue
		}
		for _, childID := range childIDs {
			n, err := e.cascadeFrom(ctx, s, edge.Target, childID, at, actorID, bestEffort)
			total += n
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// Restore clears a tombstone. Uniqueness conflicts against currently active
// records are checked here, centrally, before the tombstone is cleared.
// Restore does not cascade.
func (e *Engine) Restore(ctx context.Context, kind domain.Kind, id string) error {
	state, err := e.store.GetTombstone(ctx, kind, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NewNotFound(resourceName(kind), nil)
		}
		return apperrors.MapError(err)
	}
	if !state.Deleted {
		return apperrors.NewNotDeleted(resourceName(kind))
	}

	conflict, err := e.store.HasRestoreConflict(ctx, kind, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if conflict {
		return apperrors.NewRestoreConflict(resourceName(kind), map[string]any{"id": id})
	}

	if err := e.store.ClearTombstone(ctx, kind, id); err != nil {
		return apperrors.MapError(err)
	}

	e.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventEntityRestored,
		Kind:      kind,
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// HardDelete permanently removes one record. Without the explicit bypass the
// operation is rejected: the retention sweep is the only sanctioned path to
// permanent removal.
func (e *Engine) HardDelete(ctx context.Context, kind domain.Kind, id string, bypassGuard bool) error {
	if !bypassGuard {
		return apperrors.NewHardDeleteDisabled()
	}
	if err := e.store.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperrors.NewNotFound(resourceName(kind), nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (e *Engine) publish(ctx context.Context, event events.Event) {
	if e.dispatcher == nil {
		return
	}
	_ = e.dispatcher.Publish(ctx, event)
}

func resourceName(kind domain.Kind) string {
	return strings.ToLower(strings.ReplaceAll(string(kind), "_", " "))
}
