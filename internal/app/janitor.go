package app

import (
	"context"
	"time"

	applog "talent-match/internal/logger"

	"go.uber.org/zap"
)

type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunJanitor deletes expired recommendations every interval until ctx is done.
// Postgres has no TTL index, so nothing else removes them.
func RunJanitor(ctx context.Context, p ExpiredPurger, interval time.Duration, logger *zap.Logger) {
	if p == nil || interval <= 0 {
		return
	}
	logger = applog.OrNop(logger).Named("janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("purge expired recommendations failed", zap.Error(err))
			}
		}
	}
}
