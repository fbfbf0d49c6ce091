package service

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// PreviewServiceInterface defines the contract for rendered design previews
type PreviewServiceInterface interface {
	GetPreview(ctx context.Context, designID int64, size string) ([]byte, error)
}

// PreviewService renders, optimizes, caches and optionally uploads design previews
// Implements PreviewServiceInterface
type PreviewService struct {
	designs  DesignServiceInterface
	renderer MarkupRenderer
	cache    *PreviewCache
	store    ObjectStore
}

// NewPreviewService creates a new PreviewService. store may be nil.
func NewPreviewService(designs DesignServiceInterface, renderer MarkupRenderer, cache *PreviewCache, store ObjectStore) *PreviewService {
	return &PreviewService{
		designs:  designs,
		renderer: renderer,
		cache:    cache,
		store:    store,
	}
}

var _ PreviewServiceInterface = (*PreviewService)(nil)

// GetPreview returns a JPEG preview of a published design's markup
func (s *PreviewService) GetPreview(ctx context.Context, designID int64, size string) ([]byte, error) {
	if size != PreviewSizeThumb && size != PreviewSizeMedium {
		return nil, fmt.Errorf("%w: size must be %s or %s", ErrInvalidInput, PreviewSizeThumb, PreviewSizeMedium)
	}

	design, err := s.designs.GetPublished(ctx, designID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(design.Code) == "" {
		return nil, fmt.Errorf("design %d has no markup: %w", designID, ErrNotFound)
	}

	cachePath := s.cache.Path(design.ID, design.UpdatedAt.Unix(), size)
	if data, ok := s.cache.Read(cachePath); ok {
		log.Printf("✓ Preview cache hit: %s", cachePath)
		return data, nil
	}

	log.Printf("🔄 Rendering preview: design=%d, size=%s", design.ID, size)
	screenshot, err := s.renderer.Render(ctx, design.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}

	optimized, err := OptimizeImage(screenshot, size)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Write(cachePath, optimized); err != nil {
		log.Printf("⚠️  Could not cache preview: %v", err)
	}

	if s.store != nil {
		key := fmt.Sprintf("previews/%d/%d-%s.jpg", design.ID, design.UpdatedAt.Unix(), size)
		if url, err := s.store.Put(ctx, key, optimized, "image/jpeg"); err != nil {
			log.Printf("⚠️  Could not upload preview for design %d: %v", design.ID, err)
		} else {
			log.Printf("✓ Preview uploaded: %s", url)
		}
	}

	return optimized, nil
}
