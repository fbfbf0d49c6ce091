package service

import (
	"context"
	"fmt"
	"log"

	"ui-design-gallery/models"
	"ui-design-gallery/repository"
	"ui-design-gallery/utils"
)

// ImportService creates draft designs from screenshots stored in Google Drive
// Implements ImportServiceInterface
type ImportService struct {
	driveService DriveServiceInterface
	designs      repository.DesignRepositoryInterface
}

// NewImportService creates a new ImportService
func NewImportService(driveService DriveServiceInterface, designs repository.DesignRepositoryInterface) *ImportService {
	return &ImportService{
		driveService: driveService,
		designs:      designs,
	}
}

// Ensure ImportService implements ImportServiceInterface
var _ ImportServiceInterface = (*ImportService)(nil)

// ImportFromDrive inserts a draft design for every image in the folder that is not in the catalog yet.
// inserted = new rows created, skipped = already existed (by image_url), total = total images seen in Drive.
func (s *ImportService) ImportFromDrive(ctx context.Context, folderID string) (*models.ImportResult, error) {
	if folderID == "" {
		return nil, fmt.Errorf("%w: folderId is required", ErrInvalidInput)
	}
	log.Printf("🔄 Starting Drive import for folder: %s", folderID)

	images, err := s.driveService.ListDesignImages(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list design images from Drive: %w", err)
	}

	log.Printf("📦 Processing %d images from Google Drive", len(images))
	result := &models.ImportResult{Total: len(images), Images: images}

	for _, img := range images {
		exists, err := s.designs.ExistsByImageURL(ctx, img.ImageURL)
		if err != nil {
			log.Printf("❌ Error checking existence for drive_file_id: %s: %v", img.DriveFileID, err)
			continue
		}

		if exists {
			log.Printf("⏭️  Skipping drive_file_id: %s (already exists in database)", img.DriveFileID)
			result.Skipped++
			continue
		}

		title, category := utils.ParseFileName(img.FileName)
		slug, err := uniqueSlug(ctx, s.designs, title, 0)
		if err != nil {
			log.Printf("❌ Error allocating slug for %s: %v", img.FileName, err)
			continue
		}

		design := &models.Design{
			Title:    title,
			ImageURL: img.ImageURL,
			Category: category,
			Status:   models.DesignStatusDraft,
			Slug:     slug,
		}
		if err := s.designs.Create(ctx, design); err != nil {
			log.Printf("❌ Error inserting drive_file_id %s into database: %v", img.DriveFileID, err)
			continue
		}

		log.Printf("✅ Imported drive_file_id: %s as design %d", img.DriveFileID, design.ID)
		result.Inserted++
	}

	log.Printf("🎉 Drive import completed: %d inserted, %d skipped, %d total processed", result.Inserted, result.Skipped, result.Total)
	return result, nil
}
