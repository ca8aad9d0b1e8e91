package repository

import (
	"context"
	"database/sql"
	"errors"

	"talent-match/internal/database"
	"talent-match/internal/domain/candidate"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type CandidateRepository interface {
	FindProfile(ctx context.Context, candidateID uuid.UUID) (candidate.Profile, error)
	// ListIDsWithSkills returns candidates that have at least one skill, oldest account first.
	ListIDsWithSkills(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresCandidateRepository struct {
	db database.DB
}

func NewPostgresCandidateRepository(db database.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

func (r *PostgresCandidateRepository) FindProfile(ctx context.Context, candidateID uuid.UUID) (candidate.Profile, error) {
	p := candidate.Profile{ID: candidateID}

	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(full_name, ''), COALESCE(location, ''), COALESCE(bio, '')
		 FROM users
		 WHERE id = $1 AND role = 'candidate'`,
		candidateID,
	)
	if err := row.Scan(&p.FullName, &p.Location, &p.Bio); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, ErrCandidateNotFound
		}
		return candidate.Profile{}, err
	}

	skills, err := r.findSkills(ctx, candidateID)
	if err != nil {
		return candidate.Profile{}, err
	}
	p.Skills = skills

	exp, err := r.findExperience(ctx, candidateID)
	if err != nil {
		return candidate.Profile{}, err
	}
	p.Experience = exp

	return p, nil
}

func (r *PostgresCandidateRepository) findSkills(ctx context.Context, candidateID uuid.UUID) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.category, s.synonyms
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Synonyms); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) findExperience(ctx context.Context, candidateID uuid.UUID) ([]candidate.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(title, ''), COALESCE(company, ''), COALESCE(duration, ''), COALESCE(description, '')
		 FROM user_experiences
		 WHERE user_id = $1
		 ORDER BY position ASC, id ASC`,
		candidateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]candidate.Experience, 0)
	for rows.Next() {
		var e candidate.Experience
		if err := rows.Scan(&e.Title, &e.Company, &e.Duration, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCandidateRepository) ListIDsWithSkills(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id
		 FROM users u
		 WHERE u.role = 'candidate'
		   AND EXISTS (SELECT 1 FROM user_skills us WHERE us.user_id = u.id)
		 ORDER BY u.created_at ASC, u.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
