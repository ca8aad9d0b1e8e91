package seeder

import (
	"context"

	"talent-match/internal/database"
)

// Seeder writes reference rows. Run must be safe to repeat against an already seeded database.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
