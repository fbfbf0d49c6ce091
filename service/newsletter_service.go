package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"ui-design-gallery/models"
	"ui-design-gallery/repository"
)

// NewsletterServiceInterface defines the contract for newsletter subscriptions
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error)
	Unsubscribe(ctx context.Context, email string) error
}

// NewsletterService handles subscriptions and the welcome email
// Implements NewsletterServiceInterface
type NewsletterService struct {
	subscribers repository.NewsletterRepositoryInterface
	mailer      Mailer
}

// NewNewsletterService creates a new NewsletterService. mailer may be nil.
func NewNewsletterService(subscribers repository.NewsletterRepositoryInterface, mailer Mailer) *NewsletterService {
	return &NewsletterService{subscribers: subscribers, mailer: mailer}
}

var _ NewsletterServiceInterface = (*NewsletterService)(nil)

// Subscribe stores the address and sends a welcome email.
// Mail failures are logged and do not fail the subscription.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	sub, err := s.subscribers.Subscribe(ctx, normalized)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Newsletter subscription: id=%d", sub.ID)

	if s.mailer != nil {
		if id, err := s.mailer.SendWelcome(ctx, normalized); err != nil {
			log.Printf("⚠️  Welcome email failed for subscriber %d: %v", sub.ID, err)
		} else {
			log.Printf("📧 Welcome email sent: id=%s", id)
		}
	}

	return sub, nil
}

// Unsubscribe deactivates an address
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	return s.subscribers.Unsubscribe(ctx, normalized)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return email, nil
}
