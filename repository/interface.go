package repository

import (
	"context"
	"errors"
	"time"

	"ui-design-gallery/models"
)

var (
	// ErrNotFound is returned when a lookup or update matches no row
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write
	ErrDuplicate = errors.New("record already exists")
)

// DesignRepositoryInterface defines the contract for design catalog operations
type DesignRepositoryInterface interface {
	List(ctx context.Context, params models.DesignListParams) ([]models.Design, int, error)
	GetByID(ctx context.Context, id int64) (*models.Design, error)
	GetBySlug(ctx context.Context, slug string) (*models.Design, error)
	ListMatchCandidates(ctx context.Context, limit int) ([]models.DesignCandidate, error)
	Popular(ctx context.Context, limit int) ([]models.Design, error)
	Create(ctx context.Context, design *models.Design) error
	Update(ctx context.Context, design *models.Design) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	ExistsByImageURL(ctx context.Context, imageURL string) (bool, error)
	IncrementViews(ctx context.Context, id int64, delta int) (int, error)
}

// EngagementRepositoryInterface defines the contract for likes and saved designs
type EngagementRepositoryInterface interface {
	ToggleLike(ctx context.Context, designID int64, token string) (bool, int, error)
	IsLiked(ctx context.Context, designID int64, token string) (bool, error)
	Save(ctx context.Context, designID int64, token string) error
	Unsave(ctx context.Context, designID int64, token string) error
	ListSaved(ctx context.Context, token string) ([]models.Design, error)
}

// RequestRepositoryInterface defines the contract for design request operations
type RequestRepositoryInterface interface {
	Create(ctx context.Context, req *models.DesignRequest) error
	List(ctx context.Context, status *string, sort string, limit int) ([]models.DesignRequest, error)
	GetByID(ctx context.Context, id int64) (*models.DesignRequest, error)
	Vote(ctx context.Context, requestID int64, token string) (int, error)
	Update(ctx context.Context, id int64, status *string, designID *int64) error
}

// CodeMatchRepositoryInterface defines the contract for saved code matches
type CodeMatchRepositoryInterface interface {
	Insert(ctx context.Context, match *models.CodeMatch) error
	GetByHash(ctx context.Context, hash string) (*models.CodeMatch, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewsletterRepositoryInterface defines the contract for newsletter subscribers
type NewsletterRepositoryInterface interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, email string) error
}

// WebVitalsRepositoryInterface defines the contract for web vitals storage
type WebVitalsRepositoryInterface interface {
	Insert(ctx context.Context, event *models.WebVitalEvent) error
}
