package candidate

import (
	"github.com/google/uuid"

	"talent-match/internal/domain/skill"
)

type Experience struct {
	Title       string
	Company     string
	Duration    string
	Description string
}

// Profile is the read-only view of a candidate account used for matching.
type Profile struct {
	ID         uuid.UUID
	FullName   string
	Location   string
	Bio        string
	Skills     []skill.Skill
	Experience []Experience
}
