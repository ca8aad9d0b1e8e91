package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/recommendation"
	"talent-match/internal/infrastructure/cache"
	applog "talent-match/internal/logger"
	"talent-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultListLimit   = 20
	MaxListLimit       = 100
	recruiterListLimit = 50
)

type ListParams struct {
	MinScore int
	Limit    int
}

type SkippedJob struct {
	JobID  uuid.UUID
	Reason string
}

// GenerationReport describes one Generate run. Recommendations are sorted by score, highest first.
type GenerationReport struct {
	CandidateID     uuid.UUID
	GenerationID    uuid.UUID
	Recommendations []recommendation.Recommendation
	ActiveJobs      int
	Excluded        int
	Scored          int
	Skipped         []SkippedJob
}

type RecommendationUsecase interface {
	Generate(ctx context.Context, candidateID uuid.UUID) (GenerationReport, error)
	List(ctx context.Context, candidateID uuid.UUID, params ListParams) ([]recommendation.Recommendation, error)
	Get(ctx context.Context, candidateID, recommendationID uuid.UUID) (recommendation.Recommendation, error)
	MarkViewed(ctx context.Context, candidateID, recommendationID uuid.UUID) (recommendation.Recommendation, error)
	Stats(ctx context.Context, candidateID uuid.UUID) (recommendation.Stats, error)
	Clear(ctx context.Context, candidateID uuid.UUID) (int64, error)
	TopCandidates(ctx context.Context, recruiterID, jobID uuid.UUID) ([]repository.CandidateMatch, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type RecommendationDeps struct {
	Candidates      repository.CandidateRepository
	Jobs            repository.JobRepository
	Applications    repository.ApplicationRepository
	Recommendations repository.RecommendationRepository
	Engine          *matching.Engine
	Locker          Locker
	Cache           RecommendationCache
	Notifier        GenerationNotifier
	Workers         int
	Logger          *zap.Logger
}

type Recommendations struct {
	candidates   repository.CandidateRepository
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	recs         repository.RecommendationRepository
	engine       *matching.Engine
	locker       Locker
	cache        RecommendationCache
	notifier     GenerationNotifier
	workers      int
	logger       *zap.Logger

	now func() time.Time
}

func NewRecommendationUsecase(d RecommendationDeps) *Recommendations {
	engine := d.Engine
	if engine == nil {
		engine = matching.NewEngine()
	}
	locker := d.Locker
	if locker == nil {
		locker = NewKeyedMutex()
	}
	workers := d.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Recommendations{
		candidates:   d.Candidates,
		jobs:         d.Jobs,
		applications: d.Applications,
		recs:         d.Recommendations,
		engine:       engine,
		locker:       locker,
		cache:        d.Cache,
		notifier:     d.Notifier,
		workers:      workers,
		logger:       applog.OrNop(d.Logger).Named("recommendations"),
		now:          time.Now,
	}
}

func (u *Recommendations) Generate(ctx context.Context, candidateID uuid.UUID) (GenerationReport, error) {
	if candidateID == uuid.Nil {
		return GenerationReport{}, ErrInvalidInput
	}

	profile, err := u.candidates.FindProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return GenerationReport{}, ErrCandidateNotFound
		}
		return GenerationReport{}, internal(err)
	}
	if len(profile.Skills) == 0 {
		return GenerationReport{}, ErrCandidateSkillsEmpty
	}

	applied, err := u.applications.AppliedJobIDs(ctx, candidateID)
	if err != nil {
		return GenerationReport{}, internal(err)
	}

	genID := uuid.New()
	report := GenerationReport{
		CandidateID:  candidateID,
		GenerationID: genID,
		Skipped:      make([]SkippedJob, 0),
	}
	cand := toMatchingCandidate(profile)
	now := u.now().UTC()

	var (
		mu   sync.Mutex
		recs = make([]recommendation.Recommendation, 0)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)

	streamErr := u.jobs.StreamActive(gctx, func(p job.Posting) error {
		report.ActiveJobs++
		if _, ok := applied[p.ID]; ok {
			report.Excluded++
			return nil
		}
		if p.ID == uuid.Nil {
			report.Skipped = append(report.Skipped, SkippedJob{Reason: "missing id"})
			return nil
		}
		mj := toMatchingJob(p)
		if err := mj.Validate(); err != nil {
			report.Skipped = append(report.Skipped, SkippedJob{JobID: p.ID, Reason: err.Error()})
			return nil
		}

		report.Scored++
		jobID := p.ID
		summary := recommendation.NewJobSummary(p)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := u.engine.Score(cand, mj)
			if res.MatchScore < recommendation.MinScore {
				return nil
			}
			rec := recommendation.New(candidateID, jobID, genID, res, now)
			rec.Job = summary
			mu.Lock()
			recs = append(recs, rec)
			mu.Unlock()
			return nil
		})
		return nil
	})
	waitErr := g.Wait()
	if err := ctx.Err(); err != nil {
		return GenerationReport{}, err
	}
	for _, err := range []error{streamErr, waitErr} {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return GenerationReport{}, err
		}
		return GenerationReport{}, internal(err)
	}
	if report.ActiveJobs == 0 {
		return GenerationReport{}, ErrNoActiveJobs
	}

	sortRecommendations(recs)
	report.Recommendations = recs

	for _, s := range report.Skipped {
		u.logger.Warn("job skipped",
			zap.String("candidate_id", candidateID.String()),
			zap.String("job_id", s.JobID.String()),
			zap.String("reason", s.Reason),
		)
	}

	unlock, err := u.locker.Lock(ctx, cache.GenerationLeaseKey(candidateID))
	if err != nil {
		if errors.Is(err, ErrGenerationInProgress) {
			return GenerationReport{}, err
		}
		return GenerationReport{}, internal(err)
	}
	err = u.recs.ReplaceForCandidate(ctx, candidateID, genID, recs)
	unlock()
	if err != nil {
		return GenerationReport{}, internal(err)
	}

	u.invalidate(ctx, candidateID)
	if u.notifier != nil {
		u.notifier.NotifyGenerated(candidateID, report.GenerationID, len(recs))
	}

	u.logger.Info("recommendations generated",
		zap.String("candidate_id", candidateID.String()),
		zap.String("generation_id", report.GenerationID.String()),
		zap.Int("active_jobs", report.ActiveJobs),
		zap.Int("excluded", report.Excluded),
		zap.Int("scored", report.Scored),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("count", len(recs)),
	)
	return report, nil
}

// sortRecommendations orders by score descending, then by job id so equal scores come out the same every run.
func sortRecommendations(recs []recommendation.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].MatchScore != recs[j].MatchScore {
			return recs[i].MatchScore > recs[j].MatchScore
		}
		return recs[i].JobID.String() < recs[j].JobID.String()
	})
}

func (u *Recommendations) List(ctx context.Context, candidateID uuid.UUID, params ListParams) ([]recommendation.Recommendation, error) {
	if candidateID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	minScore := params.MinScore
	if minScore <= 0 {
		minScore = recommendation.MinScore
	}
	if minScore > 100 {
		return nil, ErrInvalidInput
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	now := u.now().UTC()
	version, cacheable := u.cacheVersion(ctx, candidateID)
	key := cache.RecommendationListKey(candidateID, version, minScore, limit)
	if cacheable {
		var cached []recommendation.Recommendation
		found, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && found {
			return dropExpired(cached, now), nil
		}
	}

	out, err := u.recs.ListByCandidate(ctx, candidateID, minScore, limit, now)
	if err != nil {
		return nil, internal(err)
	}

	if cacheable {
		if err := u.cache.SetJSON(ctx, key, out, 0); err != nil {
			u.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func dropExpired(recs []recommendation.Recommendation, now time.Time) []recommendation.Recommendation {
	out := make([]recommendation.Recommendation, 0, len(recs))
	for _, r := range recs {
		if !r.Expired(now) {
			out = append(out, r)
		}
	}
	return out
}

func (u *Recommendations) Get(ctx context.Context, candidateID, recommendationID uuid.UUID) (recommendation.Recommendation, error) {
	if candidateID == uuid.Nil {
		return recommendation.Recommendation{}, ErrUnauthorized
	}
	if recommendationID == uuid.Nil {
		return recommendation.Recommendation{}, ErrInvalidInput
	}

	rec, err := u.recs.GetByID(ctx, recommendationID)
	if err != nil {
		if errors.Is(err, repository.ErrRecommendationNotFound) {
			return recommendation.Recommendation{}, ErrRecommendationNotFound
		}
		return recommendation.Recommendation{}, internal(err)
	}
	if rec.Expired(u.now()) {
		return recommendation.Recommendation{}, ErrRecommendationNotFound
	}
	if rec.CandidateID != candidateID {
		return recommendation.Recommendation{}, ErrForbidden
	}
	return rec, nil
}

func (u *Recommendations) MarkViewed(ctx context.Context, candidateID, recommendationID uuid.UUID) (recommendation.Recommendation, error) {
	if _, err := u.Get(ctx, candidateID, recommendationID); err != nil {
		return recommendation.Recommendation{}, err
	}

	rec, err := u.recs.MarkViewed(ctx, recommendationID, u.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrRecommendationNotFound) {
			return recommendation.Recommendation{}, ErrRecommendationNotFound
		}
		return recommendation.Recommendation{}, internal(err)
	}
	u.invalidate(ctx, candidateID)
	return rec, nil
}

func (u *Recommendations) Stats(ctx context.Context, candidateID uuid.UUID) (recommendation.Stats, error) {
	if candidateID == uuid.Nil {
		return recommendation.Stats{}, ErrUnauthorized
	}

	version, cacheable := u.cacheVersion(ctx, candidateID)
	key := cache.RecommendationStatsKey(candidateID, version)
	if cacheable {
		var cached recommendation.Stats
		if found, err := u.cache.GetJSON(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	s, err := u.recs.Stats(ctx, candidateID, recommendation.HighMatchScore, u.now().UTC())
	if err != nil {
		return recommendation.Stats{}, internal(err)
	}
	if cacheable {
		if err := u.cache.SetJSON(ctx, key, s, 0); err != nil {
			u.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return s, nil
}

func (u *Recommendations) Clear(ctx context.Context, candidateID uuid.UUID) (int64, error) {
	if candidateID == uuid.Nil {
		return 0, ErrUnauthorized
	}

	unlock, err := u.locker.Lock(ctx, cache.GenerationLeaseKey(candidateID))
	if err != nil {
		if errors.Is(err, ErrGenerationInProgress) {
			return 0, err
		}
		return 0, internal(err)
	}
	n, err := u.recs.DeleteByCandidate(ctx, candidateID)
	unlock()
	if err != nil {
		return 0, internal(err)
	}

	u.invalidate(ctx, candidateID)
	u.logger.Info("recommendations cleared", zap.String("candidate_id", candidateID.String()), zap.Int64("count", n))
	return n, nil
}

func (u *Recommendations) TopCandidates(ctx context.Context, recruiterID, jobID uuid.UUID) ([]repository.CandidateMatch, error) {
	if recruiterID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	p, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, internal(err)
	}
	if p.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}

	out, err := u.recs.ListByJob(ctx, jobID, recommendation.RecruiterMinScore, recruiterListLimit, u.now().UTC())
	if err != nil {
		return nil, internal(err)
	}
	return out, nil
}

func (u *Recommendations) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := u.recs.DeleteExpired(ctx, u.now().UTC())
	if err != nil {
		return 0, internal(err)
	}
	if n > 0 && u.cache != nil {
		for _, pattern := range cache.RecommendationReadPatterns() {
			if err := u.cache.DeleteByPattern(ctx, pattern); err != nil {
				u.logger.Debug("cache purge failed", zap.String("pattern", pattern), zap.Error(err))
			}
		}
	}
	u.logger.Info("expired recommendations purged", zap.Int64("count", n))
	return n, nil
}

// cacheVersion is read before the database so a write racing an invalidation lands under a dead key.
func (u *Recommendations) cacheVersion(ctx context.Context, candidateID uuid.UUID) (int64, bool) {
	if u.cache == nil {
		return 0, false
	}
	v, err := u.cache.Version(ctx, cache.RecommendationVersionKey(candidateID))
	if err != nil {
		u.logger.Debug("cache version read failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
		return 0, false
	}
	return v, true
}

func (u *Recommendations) invalidate(ctx context.Context, candidateID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.BumpVersion(ctx, cache.RecommendationVersionKey(candidateID)); err != nil {
		u.logger.Debug("cache version bump failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
	}
	if err := u.cache.DeleteByPattern(ctx, cache.RecommendationPattern(candidateID)); err != nil {
		u.logger.Debug("cache invalidation failed", zap.String("candidate_id", candidateID.String()), zap.Error(err))
	}
}
