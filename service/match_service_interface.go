package service

import (
	"context"
	"time"

	"ui-design-gallery/models"
)

// MatchServiceInterface defines the contract for code-match operations
type MatchServiceInterface interface {
	Recommend(ctx context.Context, code string) (*models.CodeMatch, error)
	// Save runs Recommend and persists the result under a new share hash
	Save(ctx context.Context, code string) (*models.CodeMatch, error)
	GetByHash(ctx context.Context, hash string) (*models.CodeMatch, error)
	PruneSaved(ctx context.Context, olderThan time.Duration) (int64, error)
}

// MatchCache stores saved code matches by hash
type MatchCache interface {
	Get(ctx context.Context, hash string) (*models.CodeMatch, bool)
	Set(ctx context.Context, match *models.CodeMatch, ttl time.Duration)
}
