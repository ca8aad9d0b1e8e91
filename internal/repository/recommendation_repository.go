package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/recommendation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

// CandidateMatch is a recommendation seen from the job side, with the candidate's public profile.
type CandidateMatch struct {
	recommendation.Recommendation
	CandidateName     string
	CandidateLocation string
}

type RecommendationRepository interface {
	// ReplaceForCandidate makes recs the candidate's whole set: rows are upserted under
	// generationID and rows from any other generation are removed, in one transaction.
	// A (candidate, job) row that already existed keeps its id, which is written back into recs.
	ReplaceForCandidate(ctx context.Context, candidateID, generationID uuid.UUID, recs []recommendation.Recommendation) error
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, minScore, limit int, now time.Time) ([]recommendation.Recommendation, error)
	GetByID(ctx context.Context, id uuid.UUID) (recommendation.Recommendation, error)
	MarkViewed(ctx context.Context, id uuid.UUID, at time.Time) (recommendation.Recommendation, error)
	Stats(ctx context.Context, candidateID uuid.UUID, highMatch int, now time.Time) (recommendation.Stats, error)
	DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) (int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, minScore, limit int, now time.Time) ([]CandidateMatch, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PostgresRecommendationRepository struct {
	db database.DB
}

func NewPostgresRecommendationRepository(db database.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

const recommendationColumns = `r.id, r.candidate_id, r.job_id, r.generation_id, r.match_score, r.match_details,
		r.reasoning, r.viewed, r.viewed_at, r.created_at, r.expires_at`

// jobSummaryColumns expects jobs aliased as j.
const jobSummaryColumns = `j.id, COALESCE(j.title, ''), COALESCE(j.company, ''), COALESCE(j.location, ''),
		j.experience_level, j.status,
		COALESCE((SELECT u.company_name FROM users u WHERE u.id = j.recruiter_id), ''),
		COALESCE((SELECT array_agg(s.name ORDER BY js.position) FROM job_skills js
			JOIN skills s ON s.id = js.skill_id WHERE js.job_id = j.id), '{}'),
		COALESCE((SELECT array_agg(s.category ORDER BY js.position) FROM job_skills js
			JOIN skills s ON s.id = js.skill_id WHERE js.job_id = j.id), '{}')`

func (r *PostgresRecommendationRepository) ReplaceForCandidate(ctx context.Context, candidateID, generationID uuid.UUID, recs []recommendation.Recommendation) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for i := range recs {
			rec := &recs[i]
			details, err := json.Marshal(rec.MatchDetails)
			if err != nil {
				return fmt.Errorf("encode match details: %w", err)
			}
			if err := tx.QueryRow(ctx,
				`INSERT INTO recommendations
					(id, candidate_id, job_id, generation_id, match_score, match_details, reasoning, viewed, viewed_at, created_at, expires_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, false, NULL, $8, $9)
				 ON CONFLICT (candidate_id, job_id) DO UPDATE SET
					generation_id = EXCLUDED.generation_id,
					match_score = EXCLUDED.match_score,
					match_details = EXCLUDED.match_details,
					reasoning = EXCLUDED.reasoning,
					viewed = false,
					viewed_at = NULL,
					created_at = EXCLUDED.created_at,
					expires_at = EXCLUDED.expires_at
				 RETURNING id`,
				rec.ID, candidateID, rec.JobID, generationID, rec.MatchScore, details, rec.Reasoning, rec.CreatedAt, rec.ExpiresAt,
			).Scan(&rec.ID); err != nil {
				return err
			}
			rec.GenerationID = generationID
		}

		_, err := tx.Exec(ctx,
			`DELETE FROM recommendations WHERE candidate_id = $1 AND generation_id <> $2`,
			candidateID, generationID,
		)
		return err
	})
}

func (r *PostgresRecommendationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, minScore, limit int, now time.Time) ([]recommendation.Recommendation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recommendationColumns+`, `+jobSummaryColumns+`
		 FROM recommendations r
		 JOIN jobs j ON j.id = r.job_id
		 WHERE r.candidate_id = $1 AND r.match_score >= $2 AND r.expires_at > $3
		 ORDER BY r.match_score DESC, r.job_id ASC
		 LIMIT $4`,
		candidateID, minScore, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]recommendation.Recommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendationWithJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRecommendationRepository) GetByID(ctx context.Context, id uuid.UUID) (recommendation.Recommendation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+recommendationColumns+`, `+jobSummaryColumns+`
		 FROM recommendations r
		 JOIN jobs j ON j.id = r.job_id
		 WHERE r.id = $1`,
		id,
	)
	rec, err := scanRecommendationWithJob(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return recommendation.Recommendation{}, ErrRecommendationNotFound
		}
		return recommendation.Recommendation{}, err
	}
	return rec, nil
}

func (r *PostgresRecommendationRepository) MarkViewed(ctx context.Context, id uuid.UUID, at time.Time) (recommendation.Recommendation, error) {
	row := r.db.QueryRow(ctx,
		`WITH r AS (
			UPDATE recommendations SET viewed = true, viewed_at = COALESCE(viewed_at, $2)
			WHERE id = $1
			RETURNING *
		 )
		 SELECT `+recommendationColumns+`, `+jobSummaryColumns+`
		 FROM r
		 JOIN jobs j ON j.id = r.job_id`,
		id, at,
	)
	rec, err := scanRecommendationWithJob(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return recommendation.Recommendation{}, ErrRecommendationNotFound
		}
		return recommendation.Recommendation{}, err
	}
	return rec, nil
}

func (r *PostgresRecommendationRepository) Stats(ctx context.Context, candidateID uuid.UUID, highMatch int, now time.Time) (recommendation.Stats, error) {
	var (
		s   recommendation.Stats
		avg float64
	)
	row := r.db.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE viewed),
			COUNT(*) FILTER (WHERE match_score >= $2),
			COALESCE(AVG(match_score), 0)::float8
		 FROM recommendations
		 WHERE candidate_id = $1 AND expires_at > $3`,
		candidateID, highMatch, now,
	)
	if err := row.Scan(&s.Total, &s.Viewed, &s.HighMatch, &avg); err != nil {
		return recommendation.Stats{}, err
	}
	s.Unviewed = s.Total - s.Viewed
	s.AverageScore = int(avg + 0.5)
	return s, nil
}

func (r *PostgresRecommendationRepository) DeleteByCandidate(ctx context.Context, candidateID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM recommendations WHERE candidate_id = $1`, candidateID)
}

func (r *PostgresRecommendationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, minScore, limit int, now time.Time) ([]CandidateMatch, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+recommendationColumns+`, COALESCE(u.full_name, ''), COALESCE(u.location, '')
		 FROM recommendations r
		 JOIN users u ON u.id = r.candidate_id
		 WHERE r.job_id = $1 AND r.match_score >= $2 AND r.expires_at > $3
		 ORDER BY r.match_score DESC, r.candidate_id ASC
		 LIMIT $4`,
		jobID, minScore, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateMatch, 0)
	for rows.Next() {
		var m CandidateMatch
		rec, err := scanRecommendation(rows, &m.CandidateName, &m.CandidateLocation)
		if err != nil {
			return nil, err
		}
		m.Recommendation = rec
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRecommendationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM recommendations WHERE expires_at <= $1`, now)
}

func scanRecommendation(row database.Row, extra ...any) (recommendation.Recommendation, error) {
	var (
		rec      recommendation.Recommendation
		details  []byte
		viewedAt sql.NullTime
	)
	dest := []any{
		&rec.ID, &rec.CandidateID, &rec.JobID, &rec.GenerationID, &rec.MatchScore, &details,
		&rec.Reasoning, &rec.Viewed, &viewedAt, &rec.CreatedAt, &rec.ExpiresAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return recommendation.Recommendation{}, err
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &rec.MatchDetails); err != nil {
			return recommendation.Recommendation{}, fmt.Errorf("decode match details: %w", err)
		}
	}
	if viewedAt.Valid {
		t := viewedAt.Time
		rec.ViewedAt = &t
	}
	return rec, nil
}

func scanRecommendationWithJob(row database.Row) (recommendation.Recommendation, error) {
	var (
		js         recommendation.JobSummary
		names      []string
		categories []string
	)
	rec, err := scanRecommendation(row,
		&js.ID, &js.Title, &js.Company, &js.Location, &js.ExperienceLevel, &js.Status,
		&js.RecruiterCompany, &names, &categories,
	)
	if err != nil {
		return recommendation.Recommendation{}, err
	}
	js.RequiredSkills = zipSkills(names, categories)
	rec.Job = &js
	return rec, nil
}
