package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecommendationCache is the read-through cache for candidate views. cache.Redis implements it.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Version(ctx context.Context, key string) (int64, error)
	BumpVersion(ctx context.Context, key string) error
}

// GenerationNotifier is told about every persisted generation.
type GenerationNotifier interface {
	NotifyGenerated(candidateID, generationID uuid.UUID, count int)
}
