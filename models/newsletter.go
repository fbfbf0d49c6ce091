package models

import "time"

// Subscriber statuses
const (
	SubscriberStatusSubscribed   = "subscribed"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

// NewsletterSubscriber is a row in newsletter_subscribers
type NewsletterSubscriber struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

// NewsletterRequest represents the body of subscribe/unsubscribe
type NewsletterRequest struct {
	Email string `json:"email"`
}
