package skill

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryProgramming = "programming"
	CategoryFramework   = "framework"
	CategoryDatabase    = "database"
	CategoryCloud       = "cloud"
	CategoryDevOps      = "devops"
	CategoryDesign      = "design"
	CategorySoftSkill   = "soft-skill"
	CategoryLanguage    = "language"
	CategoryTool        = "tool"
	CategoryOther       = "other"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Synonyms  []string
	CreatedAt time.Time
}
