package seeder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-match/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DemoSeeder creates one recruiter with a small active catalog and two candidates,
// enough to exercise generation end to end on a fresh database.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

type demoJob struct {
	Title            string
	Company          string
	Location         string
	Level            string
	Description      string
	Skills           []string
	Responsibilities []string
	Qualifications   []string
}

type demoCandidate struct {
	Email      string
	FullName   string
	Location   string
	Bio        string
	Skills     []string
	Experience [][2]string
}

var demoJobs = []demoJob{
	{
		Title: "Backend Engineer (Go)", Company: "TalentMatch Labs", Location: "Jakarta, ID", Level: "mid",
		Description:      "Build and maintain Go services, REST APIs, and PostgreSQL-backed systems.",
		Skills:           []string{"go", "postgresql", "redis", "docker"},
		Responsibilities: []string{"Design REST APIs", "Own service reliability"},
		Qualifications:   []string{"Production Go experience"},
	},
	{
		Title: "Fullstack Engineer (React + Go)", Company: "TalentMatch Labs", Location: "Bandung, ID", Level: "mid",
		Description:      "Develop web apps with React/TypeScript and backend services in Go.",
		Skills:           []string{"react", "typescript", "go"},
		Responsibilities: []string{"Ship features across the stack"},
		Qualifications:   []string{"Comfortable with React and Go"},
	},
	{
		Title: "DevOps Engineer", Company: "CloudKita", Location: "Remote", Level: "senior",
		Description:      "Operate CI/CD, Docker, Kubernetes, and cloud infrastructure for production workloads.",
		Skills:           []string{"docker", "kubernetes", "ci/cd", "aws"},
		Responsibilities: []string{"Run deployment pipelines", "Manage clusters"},
		Qualifications:   []string{"Kubernetes in production"},
	},
	{
		Title: "Data Engineer", Company: "InsightWorks", Location: "Surabaya, ID", Level: "mid",
		Description:      "Build data pipelines, manage warehouses, and optimize PostgreSQL for analytics.",
		Skills:           []string{"python", "postgresql", "gcp"},
		Responsibilities: []string{"Maintain ETL pipelines"},
		Qualifications:   []string{"SQL tuning experience"},
	},
	{
		Title: "Mobile Engineer (React Native)", Company: "AppForge", Location: "Yogyakarta, ID", Level: "entry",
		Description:      "Build cross-platform mobile apps, integrate APIs, and maintain release pipelines.",
		Skills:           []string{"react native", "javascript", "typescript"},
		Responsibilities: []string{"Ship mobile releases"},
	},
	{
		Title: "QA Automation Engineer", Company: "QualityHub", Location: "Remote", Level: "entry",
		Description:      "Write automated tests for APIs and web apps, integrate tests into CI pipelines.",
		Skills:           []string{"test automation", "javascript", "ci/cd"},
		Responsibilities: []string{"Grow the regression suite"},
	},
	{
		Title: "Site Reliability Engineer (SRE)", Company: "ScaleUp", Location: "Jakarta, ID", Level: "lead",
		Description:      "Improve reliability, observability, and performance across distributed services.",
		Skills:           []string{"go", "kubernetes", "aws", "communication"},
		Responsibilities: []string{"Lead incident response", "Define SLOs"},
		Qualifications:   []string{"Eight or more years operating production systems"},
	},
	{
		Title: "Product Engineer (TypeScript)", Company: "BuildFast", Location: "Remote", Level: "mid",
		Description:      "Ship product features in TypeScript with strong focus on UI quality and API integration.",
		Skills:           []string{"typescript", "react", "figma"},
		Responsibilities: []string{"Partner with design on UI quality"},
	},
}

var demoCandidates = []demoCandidate{
	{
		Email: "candidate.go@example.com", FullName: "Rina Pratama", Location: "Jakarta, ID",
		Bio:    "Backend engineer building Go services and PostgreSQL data models.",
		Skills: []string{"go", "postgresql", "docker", "redis"},
		Experience: [][2]string{
			{"Backend Engineer", "Go microservices with PostgreSQL and Redis caching"},
			{"Software Engineer", "REST APIs and Docker based deployments"},
		},
	},
	{
		Email: "candidate.fe@example.com", FullName: "Dimas Saputra", Location: "Remote",
		Bio:    "Frontend developer focused on React and TypeScript product work.",
		Skills: []string{"react", "typescript", "javascript", "figma"},
		Experience: [][2]string{
			{"Frontend Developer", "React and TypeScript single page apps"},
		},
	},
}

const demoRecruiterEmail = "recruiter@example.com"

func (DemoSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "jobs", "id", "recruiter_id", "title", "description", "experience_level", "status",
		"responsibilities", "qualifications", "posted_at"); err != nil {
		return err
	}
	if err := RequireColumns(ctx, db, "users", "id", "email", "role", "full_name", "location", "bio"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		skills, err := loadSkillsByName(ctx, tx)
		if err != nil {
			return err
		}

		recruiterID, err := upsertUser(ctx, tx, demoRecruiterEmail, "recruiter", "Demo Recruiter", "Jakarta, ID", "")
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		for i, j := range demoJobs {
			exists, err := jobExists(ctx, tx, recruiterID, j.Title)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			jobID := uuid.New()
			if _, err := tx.Exec(ctx,
				`INSERT INTO jobs (id, recruiter_id, title, description, company, location, experience_level, status,
					responsibilities, qualifications, posted_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8, $9, $10)`,
				jobID, recruiterID, j.Title, j.Description, j.Company, j.Location, j.Level,
				nonNil(j.Responsibilities), nonNil(j.Qualifications), now.Add(-time.Duration(i)*time.Hour),
			); err != nil {
				return fmt.Errorf("insert job %q: %w", j.Title, err)
			}

			for pos, name := range j.Skills {
				skillID, ok := skills[name]
				if !ok {
					return fmt.Errorf("job %q: unknown skill %q", j.Title, name)
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO job_skills (job_id, skill_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
					jobID, skillID, pos,
				); err != nil {
					return err
				}
			}
		}

		for _, c := range demoCandidates {
			userID, err := upsertUser(ctx, tx, c.Email, "candidate", c.FullName, c.Location, c.Bio)
			if err != nil {
				return err
			}
			for _, name := range c.Skills {
				skillID, ok := skills[name]
				if !ok {
					return fmt.Errorf("candidate %q: unknown skill %q", c.Email, name)
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
					userID, skillID,
				); err != nil {
					return err
				}
			}

			if _, err := tx.Exec(ctx, `DELETE FROM user_experiences WHERE user_id = $1`, userID); err != nil {
				return err
			}
			for pos, e := range c.Experience {
				if _, err := tx.Exec(ctx,
					`INSERT INTO user_experiences (user_id, position, title, description) VALUES ($1, $2, $3, $4)`,
					userID, pos, e[0], e[1],
				); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

type querier interface {
	QueryRow(ctx context.Context, query string, args ...any) database.Row
	Query(ctx context.Context, query string, args ...any) (database.Rows, error)
}

func loadSkillsByName(ctx context.Context, q querier) (map[string]uuid.UUID, error) {
	rows, err := q.Query(ctx, `SELECT id, name FROM skills`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]uuid.UUID)
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[strings.ToLower(strings.TrimSpace(name))] = id
	}
	return out, rows.Err()
}

func upsertUser(ctx context.Context, q querier, email, role, fullName, location, bio string) (uuid.UUID, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx,
		`INSERT INTO users (email, role, full_name, location, bio) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name, location = EXCLUDED.location, bio = EXCLUDED.bio
		 RETURNING id`,
		email, role, fullName, location, bio,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert user %s: %w", email, err)
	}
	return id, nil
}

func jobExists(ctx context.Context, q querier, recruiterID uuid.UUID, title string) (bool, error) {
	var id uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM jobs WHERE recruiter_id = $1 AND title = $2 LIMIT 1`, recruiterID, title).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
