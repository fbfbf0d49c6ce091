package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"ui-design-gallery/models"
)

// EngagementRepository handles likes and saved designs per visitor token
// Implements EngagementRepositoryInterface
type EngagementRepository struct {
	db *sql.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(sqlDB *sql.DB) *EngagementRepository {
	return &EngagementRepository{db: sqlDB}
}

var _ EngagementRepositoryInterface = (*EngagementRepository)(nil)

// ToggleLike removes the visitor's like if present, otherwise adds it.
// The like row and the counter on designs change in one transaction.
// Returns the new liked state and like count.
func (r *EngagementRepository) ToggleLike(ctx context.Context, designID int64, token string) (bool, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM design_likes WHERE design_id = $1 AND token = $2`, designID, token)
	if err != nil {
		log.Printf("❌ Error removing like for design %d: %v", designID, err)
		return false, 0, fmt.Errorf("failed to remove like: %w", err)
	}

	removed, _ := result.RowsAffected()
	liked := removed == 0
	delta := -1

	if liked {
		inserted, err := tx.ExecContext(ctx,
			`INSERT INTO design_likes (design_id, token) VALUES ($1, $2) ON CONFLICT (design_id, token) DO NOTHING`,
			designID, token)
		if err != nil {
			log.Printf("❌ Error adding like for design %d: %v", designID, err)
			return false, 0, fmt.Errorf("failed to add like: %w", err)
		}
		delta = 1
		// A concurrent toggle already inserted the row and bumped the counter
		if n, err := inserted.RowsAffected(); err == nil && n == 0 {
			delta = 0
		}
	}

	var likes int
	if delta == 0 {
		err = tx.QueryRowContext(ctx, `SELECT likes FROM designs WHERE id = $1`, designID).Scan(&likes)
	} else {
		err = tx.QueryRowContext(ctx,
			`UPDATE designs SET likes = GREATEST(likes + $1, 0) WHERE id = $2 RETURNING likes`,
			delta, designID).Scan(&likes)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, 0, fmt.Errorf("design %d: %w", designID, ErrNotFound)
		}
		return false, 0, fmt.Errorf("failed to update like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("failed to commit like: %w", err)
	}

	log.Printf("✓ Like toggled: design=%d, liked=%v, likes=%d", designID, liked, likes)
	return liked, likes, nil
}

// IsLiked reports whether token has liked the design
func (r *EngagementRepository) IsLiked(ctx context.Context, designID int64, token string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM design_likes WHERE design_id = $1 AND token = $2)`
	if err := r.db.QueryRowContext(ctx, query, designID, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// Save bookmarks a design for token. Saving twice is a no-op.
func (r *EngagementRepository) Save(ctx context.Context, designID int64, token string) error {
	query := `
		INSERT INTO design_saves (design_id, token)
		SELECT id, $2 FROM designs WHERE id = $1
		ON CONFLICT (design_id, token) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, designID, token)
	if err != nil {
		log.Printf("❌ Error saving design %d: %v", designID, err)
		return fmt.Errorf("failed to save design: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		log.Printf("⚠️  Design %d not saved (missing or already saved)", designID)
	}
	return nil
}

// Unsave removes a bookmark
func (r *EngagementRepository) Unsave(ctx context.Context, designID int64, token string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM design_saves WHERE design_id = $1 AND token = $2`, designID, token)
	if err != nil {
		return fmt.Errorf("failed to remove saved design: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("saved design %d: %w", designID, ErrNotFound)
	}
	return nil
}

// ListSaved returns the published designs saved by token, most recently saved first
func (r *EngagementRepository) ListSaved(ctx context.Context, token string) ([]models.Design, error) {
	query := `
		SELECT d.id, d.title,
		       COALESCE(d.description, '') as description,
		       COALESCE(d.image_url, '') as image_url,
		       d.category,
		       COALESCE(d.code, '') as code,
		       d.likes, d.views, d.status,
		       COALESCE(d.slug, '') as slug,
		       d.created_at, d.updated_at
		FROM design_saves s
		JOIN designs d ON d.id = s.design_id
		WHERE s.token = $1 AND d.status = 'published'
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, token)
	if err != nil {
		log.Printf("❌ Error fetching saved designs: %v", err)
		return nil, fmt.Errorf("failed to get saved designs: %w", err)
	}
	defer rows.Close()

	designs := []models.Design{}
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved design: %w", err)
		}
		designs = append(designs, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved designs: %w", err)
	}

	return designs, nil
}
