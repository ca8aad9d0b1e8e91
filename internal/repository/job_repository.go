package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	FindByID(ctx context.Context, jobID uuid.UUID) (job.Posting, error)
	// StreamActive calls fn for each active job, newest first. A non-nil error from fn stops the scan.
	StreamActive(ctx context.Context, fn func(job.Posting) error) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.recruiter_id, COALESCE(j.title, ''), COALESCE(j.description, ''),
		COALESCE(j.company, ''), COALESCE(j.location, ''), j.experience_level, j.status,
		j.responsibilities, j.qualifications, j.posted_at,
		COALESCE((SELECT u.company_name FROM users u WHERE u.id = j.recruiter_id), ''),
		COALESCE(array_agg(s.name ORDER BY js.position) FILTER (WHERE s.id IS NOT NULL), '{}'),
		COALESCE(array_agg(s.category ORDER BY js.position) FILTER (WHERE s.id IS NOT NULL), '{}')
	 FROM jobs j
	 LEFT JOIN job_skills js ON js.job_id = j.id
	 LEFT JOIN skills s ON s.id = js.skill_id`

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, jobSelect+`
	 WHERE j.id = $1
	 GROUP BY j.id`,
		jobID,
	)

	p, err := scanPosting(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) StreamActive(ctx context.Context, fn func(job.Posting) error) error {
	rows, err := r.db.Query(ctx, jobSelect+`
	 WHERE j.status = $1
	 GROUP BY j.id
	 ORDER BY j.posted_at DESC, j.id ASC`,
		job.StatusActive,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanPosting(row database.Row) (job.Posting, error) {
	var (
		p          job.Posting
		names      []string
		categories []string
	)
	if err := row.Scan(
		&p.ID, &p.RecruiterID, &p.Title, &p.Description,
		&p.Company, &p.Location, &p.ExperienceLevel, &p.Status,
		&p.Responsibilities, &p.Qualifications, &p.PostedAt,
		&p.RecruiterCompany,
		&names, &categories,
	); err != nil {
		return job.Posting{}, err
	}

	p.RequiredSkills = zipSkills(names, categories)
	return p, nil
}

func zipSkills(names, categories []string) []skill.Skill {
	out := make([]skill.Skill, 0, len(names))
	for i, n := range names {
		s := skill.Skill{Name: n}
		if i < len(categories) {
			s.Category = categories[i]
		}
		out = append(out, s)
	}
	return out
}
