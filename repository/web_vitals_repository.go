package repository

import (
	"context"
	"database/sql"
	"fmt"

	"ui-design-gallery/models"
)

// WebVitalsRepository stores Core Web Vitals samples
type WebVitalsRepository struct {
	db *sql.DB
}

// NewWebVitalsRepository creates a new WebVitalsRepository
func NewWebVitalsRepository(sqlDB *sql.DB) *WebVitalsRepository {
	return &WebVitalsRepository{db: sqlDB}
}

var _ WebVitalsRepositoryInterface = (*WebVitalsRepository)(nil)

// Insert stores one sample. Postgres errors are wrapped, not translated.
func (r *WebVitalsRepository) Insert(ctx context.Context, event *models.WebVitalEvent) error {
	query := `
		INSERT INTO web_vitals_events (name, value, rating, path, navigation_type)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.Value,
		nullIfEmpty(event.Rating),
		nullIfEmpty(event.Path),
		nullIfEmpty(event.NavigationType),
	)
	if err != nil {
		return fmt.Errorf("failed to insert web vital: %w", err)
	}
	return nil
}
