package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"ui-design-gallery/db"
	"ui-design-gallery/models"
)

// RequestRepository handles design requests and their votes
// Implements RequestRepositoryInterface
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(sqlDB *sql.DB) *RequestRepository {
	return &RequestRepository{db: sqlDB}
}

var _ RequestRepositoryInterface = (*RequestRepository)(nil)

const requestColumns = `
		r.id, r.title,
		COALESCE(r.description, '') as description,
		r.category,
		COALESCE(r.email, '') as email,
		r.vote_count, r.status, r.design_id,
		COALESCE(d.slug, '') as design_slug,
		r.created_at`

func scanRequest(row rowScanner) (*models.DesignRequest, error) {
	var req models.DesignRequest
	var designID sql.NullInt64
	err := row.Scan(
		&req.ID,
		&req.Title,
		&req.Description,
		&req.Category,
		&req.Email,
		&req.VoteCount,
		&req.Status,
		&designID,
		&req.DesignSlug,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if designID.Valid {
		req.DesignID = &designID.Int64
	}
	return &req, nil
}

// Create inserts a new design request
func (r *RequestRepository) Create(ctx context.Context, req *models.DesignRequest) error {
	log.Printf("💾 Inserting design request: title=%s, category=%s", req.Title, req.Category)

	query := `
		INSERT INTO design_requests (title, description, category, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, vote_count, status, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		req.Title,
		nullIfEmpty(req.Description),
		req.Category,
		nullIfEmpty(req.Email),
	).Scan(&req.ID, &req.VoteCount, &req.Status, &req.CreatedAt)
	if err != nil {
		log.Printf("❌ Database INSERT error for design request: %v", err)
		return fmt.Errorf("failed to insert design request: %w", err)
	}

	log.Printf("💾 Database: Successfully inserted design request (id: %d)", req.ID)
	return nil
}

// List retrieves design requests, optionally filtered by status.
// sort "votes" orders by vote count, anything else by newest.
func (r *RequestRepository) List(ctx context.Context, status *string, sort string, limit int) ([]models.DesignRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM design_requests r
		LEFT JOIN designs d ON d.id = r.design_id`

	var args []any
	if status != nil && *status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, *status)
	}

	if sort == "votes" {
		query += ` ORDER BY r.vote_count DESC, r.created_at DESC`
	} else {
		query += ` ORDER BY r.created_at DESC`
	}

	query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Error listing design requests: %v", err)
		return nil, fmt.Errorf("failed to list design requests: %w", err)
	}
	defer rows.Close()

	requests := []models.DesignRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan design request: %w", err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate design requests: %w", err)
	}

	log.Printf("✓ Successfully listed %d design requests", len(requests))
	return requests, nil
}

// GetByID retrieves a design request by its ID
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.DesignRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM design_requests r
		LEFT JOIN designs d ON d.id = r.design_id
		WHERE r.id = $1`

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("design request %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get design request: %w", err)
	}
	return req, nil
}

// Vote records one vote per token and returns the new vote count
func (r *RequestRepository) Vote(ctx context.Context, requestID int64, token string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var voteCount int
	err = tx.QueryRowContext(ctx,
		`UPDATE design_requests SET vote_count = vote_count + 1 WHERE id = $1 RETURNING vote_count`,
		requestID).Scan(&voteCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("design request %d: %w", requestID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to update vote count: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO design_request_votes (request_id, token) VALUES ($1, $2)`, requestID, token)
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Printf("⚠️  Duplicate vote for request %d", requestID)
			return 0, fmt.Errorf("vote on request %d: %w", requestID, ErrDuplicate)
		}
		return 0, fmt.Errorf("failed to insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit vote: %w", err)
	}

	log.Printf("✓ Vote recorded: request=%d, votes=%d", requestID, voteCount)
	return voteCount, nil
}

// Update changes the status and/or linked design of a request. Nil arguments are left unchanged.
func (r *RequestRepository) Update(ctx context.Context, id int64, status *string, designID *int64) error {
	log.Printf("🔄 Updating design request: id=%d", id)

	query := `
		UPDATE design_requests
		SET status = COALESCE($1, status),
		    design_id = COALESCE($2, design_id)
		WHERE id = $3
	`

	var statusArg, designArg any
	if status != nil {
		statusArg = *status
	}
	if designID != nil {
		designArg = *designID
	}

	result, err := r.db.ExecContext(ctx, query, statusArg, designArg, id)
	if err != nil {
		log.Printf("❌ Error updating design request %d: %v", id, err)
		return fmt.Errorf("failed to update design request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("⚠️  Warning: Could not get rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("design request %d: %w", id, ErrNotFound)
	}

	log.Printf("✅ Successfully updated design request: id=%d", id)
	return nil
}
