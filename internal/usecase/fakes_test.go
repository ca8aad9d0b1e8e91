package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sort"
	"sync"
	"time"

	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/recommendation"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type fakeCandidates struct {
	profiles map[uuid.UUID]candidate.Profile
	err      error
}

func (f *fakeCandidates) FindProfile(_ context.Context, id uuid.UUID) (candidate.Profile, error) {
	if f.err != nil {
		return candidate.Profile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return candidate.Profile{}, repository.ErrCandidateNotFound
	}
	return p, nil
}

func (f *fakeCandidates) ListIDsWithSkills(context.Context) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]uuid.UUID, 0, len(f.profiles))
	for id, p := range f.profiles {
		if len(p.Skills) > 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

type fakeJobs struct {
	postings  []job.Posting
	streamErr error
}

func (f *fakeJobs) FindByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	for _, p := range f.postings {
		if p.ID == id {
			return p, nil
		}
	}
	return job.Posting{}, repository.ErrJobNotFound
}

func (f *fakeJobs) StreamActive(ctx context.Context, fn func(job.Posting) error) error {
	for _, p := range f.postings {
		if !p.IsActive() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return f.streamErr
}

type fakeApplications struct {
	applied map[uuid.UUID][]uuid.UUID
}

func (f *fakeApplications) AppliedJobIDs(_ context.Context, candidateID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{})
	for _, id := range f.applied[candidateID] {
		out[id] = struct{}{}
	}
	return out, nil
}

type listCall struct {
	minScore int
	limit    int
}

// fakeRecommendations applies ReplaceForCandidate atomically, like the Postgres transaction,
// and keeps the id of an upserted (candidate, job) row.
type fakeRecommendations struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]recommendation.Recommendation
	listCalls []listCall
	replaces  int
}

func newFakeRecommendations() *fakeRecommendations {
	return &fakeRecommendations{rows: make(map[uuid.UUID]recommendation.Recommendation)}
}

func (f *fakeRecommendations) put(rec recommendation.Recommendation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[rec.ID] = rec
}

func (f *fakeRecommendations) forCandidate(candidateID uuid.UUID) []recommendation.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recommendation.Recommendation, 0)
	for _, r := range f.rows {
		if r.CandidateID == candidateID {
			out = append(out, r)
		}
	}
	sortRecommendations(out)
	return out
}

func (f *fakeRecommendations) ReplaceForCandidate(_ context.Context, candidateID, generationID uuid.UUID, recs []recommendation.Recommendation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaces++

	for i := range recs {
		rec := &recs[i]
		for id, existing := range f.rows {
			if existing.CandidateID == candidateID && existing.JobID == rec.JobID {
				rec.ID = id
			}
		}
		rec.CandidateID = candidateID
		rec.GenerationID = generationID
		rec.Viewed = false
		rec.ViewedAt = nil
		f.rows[rec.ID] = *rec
	}
	for id, existing := range f.rows {
		if existing.CandidateID == candidateID && existing.GenerationID != generationID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeRecommendations) ListByCandidate(_ context.Context, candidateID uuid.UUID, minScore, limit int, now time.Time) ([]recommendation.Recommendation, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, listCall{minScore: minScore, limit: limit})
	f.mu.Unlock()

	out := make([]recommendation.Recommendation, 0)
	for _, r := range f.forCandidate(candidateID) {
		if r.MatchScore >= minScore && !r.Expired(now) {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecommendations) GetByID(_ context.Context, id uuid.UUID) (recommendation.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return recommendation.Recommendation{}, repository.ErrRecommendationNotFound
	}
	return r, nil
}

func (f *fakeRecommendations) MarkViewed(_ context.Context, id uuid.UUID, at time.Time) (recommendation.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return recommendation.Recommendation{}, repository.ErrRecommendationNotFound
	}
	r.Viewed = true
	if r.ViewedAt == nil {
		r.ViewedAt = &at
	}
	f.rows[id] = r
	return r, nil
}

func (f *fakeRecommendations) Stats(_ context.Context, candidateID uuid.UUID, highMatch int, now time.Time) (recommendation.Stats, error) {
	var (
		s   recommendation.Stats
		sum int
	)
	for _, r := range f.forCandidate(candidateID) {
		if r.Expired(now) {
			continue
		}
		s.Total++
		sum += r.MatchScore
		if r.Viewed {
			s.Viewed++
		}
		if r.MatchScore >= highMatch {
			s.HighMatch++
		}
	}
	s.Unviewed = s.Total - s.Viewed
	if s.Total > 0 {
		s.AverageScore = int(float64(sum)/float64(s.Total) + 0.5)
	}
	return s, nil
}

func (f *fakeRecommendations) DeleteByCandidate(_ context.Context, candidateID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, r := range f.rows {
		if r.CandidateID == candidateID {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRecommendations) ListByJob(_ context.Context, jobID uuid.UUID, minScore, limit int, now time.Time) ([]repository.CandidateMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.CandidateMatch, 0)
	for _, r := range f.rows {
		if r.JobID == jobID && r.MatchScore >= minScore && !r.Expired(now) {
			out = append(out, repository.CandidateMatch{Recommendation: r})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecommendations) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, r := range f.rows {
		if r.Expired(now) {
			delete(f.rows, id)
			n++
		}
	}
	return n, nil
}

type fakeCache struct {
	mu       sync.Mutex
	items    map[string][]byte
	versions map[string]int64
	hits     int
	setErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte), versions: make(map[string]int64)}
}

func (c *fakeCache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key], nil
}

func (c *fakeCache) BumpVersion(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[key]++
	return nil
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

type notification struct {
	candidateID  uuid.UUID
	generationID uuid.UUID
	count        int
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (n *fakeNotifier) NotifyGenerated(candidateID, generationID uuid.UUID, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{candidateID: candidateID, generationID: generationID, count: count})
}

type fakeLeaseStore struct {
	mu       sync.Mutex
	held     map[string]string
	err      error
	released []string
}

func newFakeLeaseStore() *fakeLeaseStore {
	return &fakeLeaseStore{held: make(map[string]string)}
}

func (s *fakeLeaseStore) AcquireLease(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	if _, ok := s.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	s.held[key] = token
	return token, true, nil
}

func (s *fakeLeaseStore) ReleaseLease(_ context.Context, key, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[key] == token {
		delete(s.held, key)
	}
	s.released = append(s.released, token)
	return nil
}

var errStoreDown = errors.New("store down")
