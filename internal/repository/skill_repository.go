package repository

import (
	"context"
	"strings"

	"talent-match/internal/database"
	"talent-match/internal/domain/skill"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	UpsertSkill(ctx context.Context, s skill.Skill) error
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, synonyms, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Synonyms, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertSkill stores a skill under its canonical name, replacing category and synonyms.
func (r *PostgresSkillRepository) UpsertSkill(ctx context.Context, s skill.Skill) error {
	name := strings.ToLower(strings.TrimSpace(s.Name))
	if name == "" {
		return nil
	}
	category := strings.TrimSpace(s.Category)
	if category == "" {
		category = skill.CategoryOther
	}
	synonyms := make([]string, 0, len(s.Synonyms))
	for _, syn := range s.Synonyms {
		syn = strings.ToLower(strings.TrimSpace(syn))
		if syn != "" {
			synonyms = append(synonyms, syn)
		}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO skills (id, name, category, synonyms)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			synonyms = EXCLUDED.synonyms`,
		name, category, synonyms,
	)
	return err
}

// SynonymMap returns canonical skill name -> synonyms for every catalog skill.
func SynonymMap(skills []skill.Skill) map[string][]string {
	out := make(map[string][]string, len(skills))
	for _, s := range skills {
		out[s.Name] = s.Synonyms
	}
	return out
}
