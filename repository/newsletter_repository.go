package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"ui-design-gallery/models"
)

// NewsletterRepository handles newsletter subscribers
// Implements NewsletterRepositoryInterface
type NewsletterRepository struct {
	db *sql.DB
}

// NewNewsletterRepository creates a new NewsletterRepository
func NewNewsletterRepository(sqlDB *sql.DB) *NewsletterRepository {
	return &NewsletterRepository{db: sqlDB}
}

var _ NewsletterRepositoryInterface = (*NewsletterRepository)(nil)

// Subscribe inserts email, or reactivates it when it was unsubscribed.
// An address that is already subscribed returns ErrDuplicate.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE
		SET status = 'subscribed', unsubscribed_at = NULL
		WHERE newsletter_subscribers.status = 'unsubscribed'
		RETURNING id, email, status, created_at
	`

	var sub models.NewsletterSubscriber
	err := r.db.QueryRowContext(ctx, query, email).Scan(&sub.ID, &sub.Email, &sub.Status, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("subscriber %s: %w", email, ErrDuplicate)
		}
		log.Printf("❌ Error subscribing %s: %v", email, err)
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	log.Printf("💾 Database: Newsletter subscriber stored (id: %d)", sub.ID)
	return &sub, nil
}

// Unsubscribe marks an active subscriber as unsubscribed
func (r *NewsletterRepository) Unsubscribe(ctx context.Context, email string) error {
	query := `
		UPDATE newsletter_subscribers
		SET status = 'unsubscribed', unsubscribed_at = NOW()
		WHERE email = $1 AND status = 'subscribed'
	`
	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("subscriber %s: %w", email, ErrNotFound)
	}
	return nil
}
