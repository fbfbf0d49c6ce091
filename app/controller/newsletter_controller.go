package controller

import (
	"errors"
	"net/http"

	"ui-design-gallery/models"
	"ui-design-gallery/service"
)

// NewsletterController handles newsletter subscriptions
type NewsletterController struct {
	newsletter service.NewsletterServiceInterface
}

// NewNewsletterController creates a new NewsletterController
func NewNewsletterController(newsletter service.NewsletterServiceInterface) *NewsletterController {
	return &NewsletterController{newsletter: newsletter}
}

// Subscribe handles POST /api/newsletter/subscribe
func (c *NewsletterController) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, err := c.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "already_subscribed", "this email is already subscribed")
			return
		}
		handleServiceError(w, "subscribe", err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// Unsubscribe handles POST /api/newsletter/unsubscribe
func (c *NewsletterController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := c.newsletter.Unsubscribe(r.Context(), req.Email); err != nil {
		handleServiceError(w, "unsubscribe", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": models.SubscriberStatusUnsubscribed})
}
