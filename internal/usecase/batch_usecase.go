package usecase

import (
	"context"
	"errors"
	"sync"

	"talent-match/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BatchOptions struct {
	Workers int
	// RatePerSecond paces generation starts; 0 means unpaced.
	RatePerSecond int
}

type BatchSummary struct {
	Candidates      int
	Generated       int
	Recommendations int
	Failed          map[uuid.UUID]error
}

// GenerateAll regenerates every candidate that has skills. One candidate failing does not stop the rest.
func (u *Recommendations) GenerateAll(ctx context.Context, opts BatchOptions) (BatchSummary, error) {
	ids, err := u.candidates.ListIDsWithSkills(ctx)
	if err != nil {
		return BatchSummary{}, internal(err)
	}

	summary := BatchSummary{Candidates: len(ids), Failed: make(map[uuid.UUID]error)}
	if len(ids) == 0 {
		return summary, nil
	}

	pool := worker.NewPool(opts.Workers, len(ids))
	pool.SetRateLimit(opts.RatePerSecond)
	results := pool.Run(ctx)

	var mu sync.Mutex
	for _, id := range ids {
		id := id
		pool.Submit(func(ctx context.Context) error {
			report, err := u.Generate(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed[id] = err
				return err
			}
			summary.Generated++
			summary.Recommendations += len(report.Recommendations)
			return nil
		})
	}
	pool.Close()
	for range results {
	}

	u.logger.Info("batch generation finished",
		zap.Int("candidates", summary.Candidates),
		zap.Int("generated", summary.Generated),
		zap.Int("failed", len(summary.Failed)),
	)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// Retryable reports whether a batch failure came from infrastructure rather than candidate data.
func Retryable(err error) bool {
	return errors.Is(err, ErrInternal) || errors.Is(err, ErrConflict)
}
