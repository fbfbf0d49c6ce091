package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"ui-design-gallery/models"
	"ui-design-gallery/repository"
	"ui-design-gallery/utils"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
	maxSlugAttempts = 50
)

var validDesignStatuses = map[string]bool{
	models.DesignStatusDraft:     true,
	models.DesignStatusPending:   true,
	models.DesignStatusPublished: true,
	models.DesignStatusArchived:  true,
}

// DesignServiceInterface defines the contract for catalog browsing and admin editing
type DesignServiceInterface interface {
	List(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.Design, error)
	GetPublished(ctx context.Context, id int64) (*models.Design, error)
	Popular(ctx context.Context, limit int) ([]models.Design, error)
	AdminList(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error)
	Create(ctx context.Context, req models.DesignCreateRequest) (*models.Design, error)
	Update(ctx context.Context, id int64, req models.DesignUpdateRequest) (*models.Design, error)
	Archive(ctx context.Context, id int64) error
}

// DesignService handles catalog reads and admin writes
// Implements DesignServiceInterface
type DesignService struct {
	designs repository.DesignRepositoryInterface
}

// NewDesignService creates a new DesignService
func NewDesignService(designs repository.DesignRepositoryInterface) *DesignService {
	return &DesignService{designs: designs}
}

var _ DesignServiceInterface = (*DesignService)(nil)

// List returns published designs only, whatever status the caller asked for
func (s *DesignService) List(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error) {
	status := models.DesignStatusPublished
	params.Status = &status
	return s.list(ctx, params)
}

// AdminList returns designs in any status, optionally filtered
func (s *DesignService) AdminList(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error) {
	if params.Status != nil && *params.Status != "" && !validDesignStatuses[*params.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *params.Status)
	}
	return s.list(ctx, params)
}

func (s *DesignService) list(ctx context.Context, params models.DesignListParams) (*models.DesignListResponse, error) {
	params.Limit = clampPageSize(params.Limit)
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Category != nil && *params.Category != "" {
		category := utils.MapCategory(*params.Category)
		params.Category = &category
	}

	designs, total, err := s.designs.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return &models.DesignListResponse{
		Designs: designs,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}, nil
}

// GetBySlug returns a published design. Rows without a stored slug are reachable
// through their fallback slug "<title>-<id>".
func (s *DesignService) GetBySlug(ctx context.Context, slug string) (*models.Design, error) {
	design, err := s.designs.GetBySlug(ctx, slug)
	if err == nil {
		return design, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	idx := strings.LastIndex(slug, "-")
	id, convErr := strconv.ParseInt(slug[idx+1:], 10, 64)
	if convErr != nil {
		return nil, err
	}

	design, lookupErr := s.GetPublished(ctx, id)
	if lookupErr != nil || design.Slug != "" || utils.DesignSlug("", design.Title, design.ID) != slug {
		return nil, err
	}
	return design, nil
}

// GetPublished returns a design by ID when it is published
func (s *DesignService) GetPublished(ctx context.Context, id int64) (*models.Design, error) {
	design, err := s.designs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if design.Status != models.DesignStatusPublished {
		return nil, fmt.Errorf("design %d: %w", id, ErrNotFound)
	}
	return design, nil
}

// Popular returns the most engaged published designs
func (s *DesignService) Popular(ctx context.Context, limit int) ([]models.Design, error) {
	return s.designs.Popular(ctx, clampPageSize(limit))
}

// Create validates and inserts a design with a unique slug derived from its title
func (s *DesignService) Create(ctx context.Context, req models.DesignCreateRequest) (*models.Design, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	status := req.Status
	if status == "" {
		status = models.DesignStatusDraft
	}
	if !validDesignStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	slug, err := uniqueSlug(ctx, s.designs, title, 0)
	if err != nil {
		return nil, err
	}

	design := &models.Design{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Category:    utils.MapCategory(req.Category),
		Code:        req.Code,
		Status:      status,
		Slug:        slug,
	}
	if err := s.designs.Create(ctx, design); err != nil {
		return nil, err
	}

	log.Printf("✅ Design created: id=%d, slug=%s, status=%s", design.ID, design.Slug, design.Status)
	return design, nil
}

// Update applies the non-nil fields of req. A title change regenerates the slug.
func (s *DesignService) Update(ctx context.Context, id int64, req models.DesignUpdateRequest) (*models.Design, error) {
	design, err := s.designs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		if title != design.Title || design.Slug == "" {
			slug, err := uniqueSlug(ctx, s.designs, title, id)
			if err != nil {
				return nil, err
			}
			design.Slug = slug
		}
		design.Title = title
	}
	if req.Description != nil {
		design.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		design.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Category != nil {
		design.Category = utils.MapCategory(*req.Category)
	}
	if req.Code != nil {
		design.Code = *req.Code
	}
	if req.Status != nil {
		if !validDesignStatuses[*req.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		design.Status = *req.Status
	}

	if err := s.designs.Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

// Archive soft-deletes a design
func (s *DesignService) Archive(ctx context.Context, id int64) error {
	if err := s.designs.UpdateStatus(ctx, id, models.DesignStatusArchived); err != nil {
		return err
	}
	log.Printf("🗑️  Design archived: id=%d", id)
	return nil
}

// uniqueSlug slugifies title and appends -2, -3, ... until no other design uses it
func uniqueSlug(ctx context.Context, designs repository.DesignRepositoryInterface, title string, excludeID int64) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "design"
	}

	candidate := base
	for n := 2; n <= maxSlugAttempts+1; n++ {
		exists, err := designs.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", fmt.Errorf("%w: no free slug for %q", ErrAlreadyExists, title)
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
