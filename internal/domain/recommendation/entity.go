package recommendation

import (
	"time"

	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

// TTL is how long a recommendation lives after creation, regardless of reads.
const TTL = 30 * 24 * time.Hour

const (
	// MinScore is the generation threshold and the default read filter.
	MinScore = 50
	// HighMatchScore is the lower bound counted as a high match in stats.
	HighMatchScore = 80
	// RecruiterMinScore filters the per-job candidate view.
	RecruiterMinScore = 60
)

type Recommendation struct {
	ID           uuid.UUID
	CandidateID  uuid.UUID
	JobID        uuid.UUID
	GenerationID uuid.UUID
	MatchScore   int
	MatchDetails matching.MatchDetails
	Reasoning    string
	Viewed       bool
	ViewedAt     *time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time

	// Job is filled by reads that join the posting; nil otherwise.
	Job *JobSummary
}

// JobSummary is the slice of a posting a recommendation list renders.
type JobSummary struct {
	ID               uuid.UUID
	Title            string
	Company          string
	Location         string
	ExperienceLevel  string
	Status           string
	RequiredSkills   []skill.Skill
	RecruiterCompany string
}

func NewJobSummary(p job.Posting) *JobSummary {
	skills := make([]skill.Skill, 0, len(p.RequiredSkills))
	for _, s := range p.RequiredSkills {
		skills = append(skills, skill.Skill{Name: s.Name, Category: s.Category})
	}
	return &JobSummary{
		ID:               p.ID,
		Title:            p.Title,
		Company:          p.Company,
		Location:         p.Location,
		ExperienceLevel:  p.ExperienceLevel,
		Status:           p.Status,
		RequiredSkills:   skills,
		RecruiterCompany: p.RecruiterCompany,
	}
}

// New projects a match result into a recommendation created at now.
func New(candidateID, jobID, generationID uuid.UUID, res matching.MatchResult, now time.Time) Recommendation {
	now = now.UTC()
	return Recommendation{
		ID:           uuid.New(),
		CandidateID:  candidateID,
		JobID:        jobID,
		GenerationID: generationID,
		MatchScore:   res.MatchScore,
		MatchDetails: res.MatchDetails,
		Reasoning:    res.Reasoning,
		CreatedAt:    now,
		ExpiresAt:    now.Add(TTL),
	}
}

func (r Recommendation) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type Stats struct {
	Total        int
	Viewed       int
	Unviewed     int
	HighMatch    int
	AverageScore int
}
