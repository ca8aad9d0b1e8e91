package usecase

import (
	"context"
	"errors"

	"talent-match/internal/domain/matching"
	applog "talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchingUsecase interface {
	ScoreOne(ctx context.Context, candidateID, jobID uuid.UUID) (matching.MatchResult, error)
}

// Matching scores a single candidate/job pair without touching stored recommendations.
type Matching struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	engine     *matching.Engine
	logger     *zap.Logger
}

func NewMatchingUsecase(candidates repository.CandidateRepository, jobs repository.JobRepository, engine *matching.Engine, logger *zap.Logger) *Matching {
	if engine == nil {
		engine = matching.NewEngine()
	}
	return &Matching{candidates: candidates, jobs: jobs, engine: engine, logger: applog.OrNop(logger)}
}

func (u *Matching) ScoreOne(ctx context.Context, candidateID, jobID uuid.UUID) (matching.MatchResult, error) {
	if candidateID == uuid.Nil {
		return matching.MatchResult{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return matching.MatchResult{}, ErrInvalidInput
	}

	p, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return matching.MatchResult{}, ErrJobNotFound
		}
		return matching.MatchResult{}, internal(err)
	}

	profile, err := u.candidates.FindProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return matching.MatchResult{}, ErrCandidateNotFound
		}
		return matching.MatchResult{}, internal(err)
	}

	mj := toMatchingJob(p)
	if err := mj.Validate(); err != nil {
		return matching.MatchResult{}, ErrJobMalformed
	}

	res := u.engine.Score(toMatchingCandidate(profile), mj)
	u.logger.Debug("pair scored",
		zap.String("candidate_id", candidateID.String()),
		zap.String("job_id", jobID.String()),
		zap.Int("score", res.MatchScore),
	)
	return res, nil
}
