package service

import (
	"context"
	"fmt"
	"log"

	"ui-design-gallery/models"
	"ui-design-gallery/repository"
)

// EngagementServiceInterface defines the contract for likes, saves and views
type EngagementServiceInterface interface {
	ToggleLike(ctx context.Context, designID int64, token string) (*models.LikeResponse, error)
	Save(ctx context.Context, designID int64, token string) (*models.SaveResponse, error)
	Unsave(ctx context.Context, designID int64, token string) (*models.SaveResponse, error)
	ListSaved(ctx context.Context, token string) ([]models.Design, error)
	RecordView(ctx context.Context, design *models.Design) (*models.ViewResponse, error)
}

// EngagementService handles anonymous visitor engagement
// Implements EngagementServiceInterface
type EngagementService struct {
	designs    DesignServiceInterface
	engagement repository.EngagementRepositoryInterface
	views      ViewRecorder
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	designs DesignServiceInterface,
	engagement repository.EngagementRepositoryInterface,
	views ViewRecorder,
) *EngagementService {
	return &EngagementService{
		designs:    designs,
		engagement: engagement,
		views:      views,
	}
}

var _ EngagementServiceInterface = (*EngagementService)(nil)

// ToggleLike flips the visitor's like on a published design
func (s *EngagementService) ToggleLike(ctx context.Context, designID int64, token string) (*models.LikeResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing visitor token", ErrInvalidInput)
	}
	if _, err := s.designs.GetPublished(ctx, designID); err != nil {
		return nil, err
	}

	liked, likes, err := s.engagement.ToggleLike(ctx, designID, token)
	if err != nil {
		return nil, err
	}
	return &models.LikeResponse{DesignID: designID, Liked: liked, Likes: likes}, nil
}

// Save bookmarks a published design for the visitor
func (s *EngagementService) Save(ctx context.Context, designID int64, token string) (*models.SaveResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing visitor token", ErrInvalidInput)
	}
	if _, err := s.designs.GetPublished(ctx, designID); err != nil {
		return nil, err
	}

	if err := s.engagement.Save(ctx, designID, token); err != nil {
		return nil, err
	}
	return &models.SaveResponse{DesignID: designID, Saved: true}, nil
}

// Unsave removes a bookmark
func (s *EngagementService) Unsave(ctx context.Context, designID int64, token string) (*models.SaveResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing visitor token", ErrInvalidInput)
	}
	if err := s.engagement.Unsave(ctx, designID, token); err != nil {
		return nil, err
	}
	return &models.SaveResponse{DesignID: designID, Saved: false}, nil
}

// ListSaved returns the visitor's saved designs
func (s *EngagementService) ListSaved(ctx context.Context, token string) ([]models.Design, error) {
	if token == "" {
		return []models.Design{}, nil
	}
	return s.engagement.ListSaved(ctx, token)
}

// RecordView counts a view of design. When the view is buffered the response
// carries the stored count plus this view.
func (s *EngagementService) RecordView(ctx context.Context, design *models.Design) (*models.ViewResponse, error) {
	views, err := s.views.Record(ctx, design.ID)
	if err != nil {
		log.Printf("⚠️  Could not record view for design %d: %v", design.ID, err)
		return nil, err
	}
	if views < 0 {
		views = design.Views + 1
	}
	return &models.ViewResponse{DesignID: design.ID, Views: views}, nil
}
