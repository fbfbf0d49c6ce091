package service

import (
	"context"

	"ui-design-gallery/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListDesignImages(ctx context.Context, folderID string) ([]models.DriveImage, error)
}

// ImportServiceInterface defines the contract for importing designs from Drive
type ImportServiceInterface interface {
	ImportFromDrive(ctx context.Context, folderID string) (*models.ImportResult, error)
}
