package job

import (
	"time"

	"talent-match/internal/domain/skill"

	"github.com/google/uuid"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
	StatusDraft  = "draft"
)

type Posting struct {
	ID               uuid.UUID
	RecruiterID      uuid.UUID
	Title            string
	Description      string
	Company          string
	Location         string
	ExperienceLevel  string
	Status           string
	RequiredSkills   []skill.Skill
	Responsibilities []string
	Qualifications   []string
	PostedAt         time.Time

	RecruiterCompany string
}

func (p Posting) IsActive() bool {
	return p.Status == StatusActive
}
