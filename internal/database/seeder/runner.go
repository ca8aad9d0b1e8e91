package seeder

import (
	"context"
	"fmt"
	"time"

	"talent-match/internal/database"
	applog "talent-match/internal/logger"

	"go.uber.org/zap"
)

// Runner applies seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return ErrNilDB
	}
	logger := applog.OrNop(r.Logger)

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			logger.Error("seed failed", zap.String("seeder", s.Name()), zap.Error(err))
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Info("seeded", zap.String("seeder", s.Name()), zap.Duration("took", time.Since(start)))
	}
	return nil
}
