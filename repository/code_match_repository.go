package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"ui-design-gallery/db"
	"ui-design-gallery/models"
)

// CodeMatchRepository persists shared code-match results
// Implements CodeMatchRepositoryInterface
type CodeMatchRepository struct {
	db *sql.DB
}

// NewCodeMatchRepository creates a new CodeMatchRepository
func NewCodeMatchRepository(sqlDB *sql.DB) *CodeMatchRepository {
	return &CodeMatchRepository{db: sqlDB}
}

var _ CodeMatchRepositoryInterface = (*CodeMatchRepository)(nil)

// Insert stores a match under match.Hash. A taken hash returns ErrDuplicate.
func (r *CodeMatchRepository) Insert(ctx context.Context, match *models.CodeMatch) error {
	metrics, err := json.Marshal(match.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	results, err := json.Marshal(match.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	query := `
		INSERT INTO code_matches (hash, code, metrics, results)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query, match.Hash, match.Code, metrics, results).Scan(&match.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("code match hash %s: %w", match.Hash, ErrDuplicate)
		}
		log.Printf("❌ Database INSERT error for code match %s: %v", match.Hash, err)
		return fmt.Errorf("failed to insert code match: %w", err)
	}

	log.Printf("💾 Database: Saved code match %s (%d results)", match.Hash, len(match.Results))
	return nil
}

// GetByHash retrieves a saved code match
func (r *CodeMatchRepository) GetByHash(ctx context.Context, hash string) (*models.CodeMatch, error) {
	query := `SELECT hash, code, metrics, results, created_at FROM code_matches WHERE hash = $1`

	var match models.CodeMatch
	var metrics, results []byte
	err := r.db.QueryRowContext(ctx, query, hash).Scan(&match.Hash, &match.Code, &metrics, &results, &match.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("code match %s: %w", hash, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get code match: %w", err)
	}

	if err := json.Unmarshal(metrics, &match.Metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}
	if err := json.Unmarshal(results, &match.Results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	return &match, nil
}

// DeleteOlderThan removes saved matches created before cutoff
func (r *CodeMatchRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM code_matches WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune code matches: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
