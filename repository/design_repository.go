package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"ui-design-gallery/db"
	"ui-design-gallery/models"
)

// DesignRepository handles database operations for designs
// Implements DesignRepositoryInterface
type DesignRepository struct {
	db *sql.DB
}

// NewDesignRepository creates a new DesignRepository
func NewDesignRepository(sqlDB *sql.DB) *DesignRepository {
	return &DesignRepository{db: sqlDB}
}

// Ensure DesignRepository implements DesignRepositoryInterface
var _ DesignRepositoryInterface = (*DesignRepository)(nil)

const designColumns = `
		id, title,
		COALESCE(description, '') as description,
		COALESCE(image_url, '') as image_url,
		category,
		COALESCE(code, '') as code,
		likes, views, status,
		COALESCE(slug, '') as slug,
		created_at, updated_at`

// designSortOrders maps the sort query parameter to an ORDER BY clause
var designSortOrders = map[string]string{
	"new":     "created_at DESC, id DESC",
	"popular": "(likes * 3 + views) DESC, id ASC",
	"likes":   "likes DESC, id ASC",
	"views":   "views DESC, id ASC",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDesign(row rowScanner, extra ...any) (*models.Design, error) {
	var d models.Design
	dest := []any{
		&d.ID,
		&d.Title,
		&d.Description,
		&d.ImageURL,
		&d.Category,
		&d.Code,
		&d.Likes,
		&d.Views,
		&d.Status,
		&d.Slug,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &d, nil
}

// List retrieves designs matching the provided filters, newest first by default.
// The second return value is the total number of matches ignoring limit/offset.
func (r *DesignRepository) List(ctx context.Context, params models.DesignListParams) ([]models.Design, int, error) {
	log.Printf("🔍 Listing designs: category=%v, status=%v, search=%v, sort=%s, limit=%d, offset=%d",
		deref(params.Category), deref(params.Status), deref(params.Search), params.Sort, params.Limit, params.Offset)

	query := `SELECT ` + designColumns + `, COUNT(*) OVER() AS total FROM designs`

	// Build WHERE conditions dynamically
	var conditions []string
	var args []any
	argIndex := 1

	if params.Status != nil && *params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *params.Status)
		argIndex++
	}

	if params.Category != nil && *params.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, *params.Category)
		argIndex++
	}

	if params.Search != nil && *params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+*params.Search+"%")
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	order, ok := designSortOrders[params.Sort]
	if !ok {
		order = designSortOrders["new"]
	}
	query += " ORDER BY " + order

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Error listing designs: %v", err)
		return nil, 0, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	designs := []models.Design{}
	total := 0
	for rows.Next() {
		d, err := scanDesign(rows, &total)
		if err != nil {
			log.Printf("❌ Error scanning design: %v", err)
			return nil, 0, fmt.Errorf("failed to scan design: %w", err)
		}
		designs = append(designs, *d)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating designs: %v", err)
		return nil, 0, fmt.Errorf("failed to iterate designs: %w", err)
	}

	log.Printf("✓ Successfully listed %d designs (total: %d)", len(designs), total)
	return designs, total, nil
}

// GetByID retrieves a design by its ID
func (r *DesignRepository) GetByID(ctx context.Context, id int64) (*models.Design, error) {
	log.Printf("🔍 Fetching design by ID: %d", id)

	query := `SELECT ` + designColumns + ` FROM designs WHERE id = $1`

	d, err := scanDesign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("design %d: %w", id, ErrNotFound)
		}
		log.Printf("❌ Error fetching design by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	return d, nil
}

// GetBySlug retrieves a published design by its slug
func (r *DesignRepository) GetBySlug(ctx context.Context, slug string) (*models.Design, error) {
	log.Printf("🔍 Fetching design by slug: %s", slug)

	query := `SELECT ` + designColumns + ` FROM designs WHERE slug = $1 AND status = 'published'`

	d, err := scanDesign(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("design %q: %w", slug, ErrNotFound)
		}
		log.Printf("❌ Error fetching design by slug %s: %v", slug, err)
		return nil, fmt.Errorf("failed to get design: %w", err)
	}

	return d, nil
}

// ListMatchCandidates returns up to limit published designs that carry markup, newest first
func (r *DesignRepository) ListMatchCandidates(ctx context.Context, limit int) ([]models.DesignCandidate, error) {
	query := `
		SELECT id, title,
		       COALESCE(image_url, '') as image_url,
		       category,
		       COALESCE(slug, '') as slug,
		       code
		FROM designs
		WHERE status = 'published' AND code IS NOT NULL AND code <> ''
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Printf("❌ Error fetching match candidates: %v", err)
		return nil, fmt.Errorf("failed to get match candidates: %w", err)
	}
	defer rows.Close()

	var candidates []models.DesignCandidate
	for rows.Next() {
		var c models.DesignCandidate
		if err := rows.Scan(&c.ID, &c.Title, &c.ImageURL, &c.Category, &c.Slug, &c.Code); err != nil {
			log.Printf("❌ Error scanning match candidate: %v", err)
			continue
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match candidates: %w", err)
	}

	log.Printf("✓ Loaded %d match candidates", len(candidates))
	return candidates, nil
}

// Popular retrieves published designs ordered by likes*3 + views
func (r *DesignRepository) Popular(ctx context.Context, limit int) ([]models.Design, error) {
	status := models.DesignStatusPublished
	designs, _, err := r.List(ctx, models.DesignListParams{
		Status: &status,
		Sort:   "popular",
		Limit:  limit,
	})
	return designs, err
}

// Create inserts a new design and fills in its ID and timestamps
func (r *DesignRepository) Create(ctx context.Context, design *models.Design) error {
	log.Printf("💾 Inserting design: title=%s, slug=%s, status=%s", design.Title, design.Slug, design.Status)

	query := `
		INSERT INTO designs (title, description, image_url, category, code, status, slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, likes, views, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		design.Title,
		nullIfEmpty(design.Description),
		nullIfEmpty(design.ImageURL),
		design.Category,
		nullIfEmpty(design.Code),
		design.Status,
		nullIfEmpty(design.Slug),
	).Scan(&design.ID, &design.Likes, &design.Views, &design.CreatedAt, &design.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("design slug %q: %w", design.Slug, ErrDuplicate)
		}
		log.Printf("❌ Database INSERT error for design %s: %v", design.Title, err)
		return fmt.Errorf("failed to insert design: %w", err)
	}

	log.Printf("💾 Database: Successfully inserted design (id: %d, slug: %s)", design.ID, design.Slug)
	return nil
}

// Update writes every editable field of a design by ID
func (r *DesignRepository) Update(ctx context.Context, design *models.Design) error {
	log.Printf("🔄 Updating design: id=%d, title=%s, status=%s", design.ID, design.Title, design.Status)

	query := `
		UPDATE designs
		SET title = $1,
		    description = $2,
		    image_url = $3,
		    category = $4,
		    code = $5,
		    status = $6,
		    slug = $7,
		    updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		design.Title,
		nullIfEmpty(design.Description),
		nullIfEmpty(design.ImageURL),
		design.Category,
		nullIfEmpty(design.Code),
		design.Status,
		nullIfEmpty(design.Slug),
		design.ID,
	).Scan(&design.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("⚠️  No rows updated for id: %d (record may not exist)", design.ID)
			return fmt.Errorf("design %d: %w", design.ID, ErrNotFound)
		}
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("design slug %q: %w", design.Slug, ErrDuplicate)
		}
		log.Printf("❌ Error updating design %d: %v", design.ID, err)
		return fmt.Errorf("failed to update design: %w", err)
	}

	log.Printf("✅ Successfully updated design: id=%d", design.ID)
	return nil
}

// UpdateStatus changes only the status of a design
func (r *DesignRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	log.Printf("🔄 Updating design status: id=%d, status=%s", id, status)

	result, err := r.db.ExecContext(ctx,
		`UPDATE designs SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		log.Printf("❌ Error updating design status %d: %v", id, err)
		return fmt.Errorf("failed to update design status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("design %d: %w", id, ErrNotFound)
	}

	return nil
}

// SlugExists checks whether another design already uses slug
func (r *DesignRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM designs WHERE slug = $1 AND id <> $2)`
	if err := r.db.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// ExistsByImageURL checks if a design already points at imageURL
func (r *DesignRepository) ExistsByImageURL(ctx context.Context, imageURL string) (bool, error) {
	log.Printf("🔍 Checking if image_url exists in database: %s", imageURL)

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM designs WHERE image_url = $1)`
	if err := r.db.QueryRowContext(ctx, query, imageURL).Scan(&exists); err != nil {
		log.Printf("❌ Error checking existence for image_url %s: %v", imageURL, err)
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// IncrementViews adds delta to the view counter and returns the new value
func (r *DesignRepository) IncrementViews(ctx context.Context, id int64, delta int) (int, error) {
	var views int
	query := `UPDATE designs SET views = views + $1 WHERE id = $2 RETURNING views`
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(&views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("design %d: %w", id, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}
	return views, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
