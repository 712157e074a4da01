package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/girmesh03/Task-Manager-V19/internal/lifecycle"
	"github.com/girmesh03/Task-Manager-V19/internal/repository"
)

// StartPurgeWorker runs the retention sweep and the reset-token cleanup in
// the background until ctx is cancelled.
func StartPurgeWorker(ctx context.Context, sweeper *lifecycle.Sweeper, resets repository.PasswordResetRepository, interval time.Duration, logger *zap.Logger) {
	go sweeper.Run(ctx)

	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed, err := resets.DeleteExpired(ctx); err != nil {
					logger.Warn("reset token cleanup failed", zap.Error(err))
				} else if removed > 0 {
					logger.Info("purged reset tokens", zap.Int64("count", removed))
				}
			}
		}
	}()
}
