package lifecycle

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/domain"
)

// Sweeper permanently removes tombstoned records whose retention window has
// elapsed. Purging runs out of band from request handling and is idempotent:
// re-sweeping an already purged set removes nothing.
type Sweeper struct {
	store    Store
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSweeper constructs a sweeper with the given sweep interval.
func NewSweeper(store Store, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{store: store, interval: interval, logger: logger, now: time.Now}
}

// Run sweeps on a ticker until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("purge sweep failed", zap.Error(err))
			}
		}
	}
}

// SweepOnce purges every kind once and returns the total rows removed.
// Kinds are visited leaf-first (reverse cascade order) so a parent row is
// never deleted while equally-expired children still reference it. A failure
// on one kind does not block the rest; the errors are joined afterwards.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	now := s.now().UTC()
	var total int64
	var errs []error

	for i := len(domain.Kinds) - 1; i >= 0; i-- {
		kind := domain.Kinds[i]
		window := Retention(kind)
		if window <= 0 {
			continue
		}
		removed, err := s.store.DeleteExpired(ctx, kind, now.Add(-window))
		if err != nil {
			s.logger.Error("purge failed",
				zap.String("kind", string(kind)), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if removed > 0 {
			s.logger.Info("purged expired records",
				zap.String("kind", string(kind)),
				zap.Int64("count", removed))
		}
		total += removed
	}
	return total, errors.Join(errs...)
}
