package controller

import (
	"net/http"

	"ui-design-gallery/app/middleware"
	"ui-design-gallery/service"
)

// EngagementController handles likes and saved designs for anonymous visitors
type EngagementController struct {
	engagement service.EngagementServiceInterface
}

// NewEngagementController creates a new EngagementController
func NewEngagementController(engagement service.EngagementServiceInterface) *EngagementController {
	return &EngagementController{engagement: engagement}
}

// ToggleLike handles POST /api/designs/{id}/like
func (c *EngagementController) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := c.engagement.ToggleLike(r.Context(), id, middleware.VisitorToken(r.Context()))
	if err != nil {
		handleServiceError(w, "toggle like", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Save handles POST /api/designs/{id}/save
func (c *EngagementController) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := c.engagement.Save(r.Context(), id, middleware.VisitorToken(r.Context()))
	if err != nil {
		handleServiceError(w, "save design", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Unsave handles DELETE /api/designs/{id}/save
func (c *EngagementController) Unsave(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := c.engagement.Unsave(r.Context(), id, middleware.VisitorToken(r.Context()))
	if err != nil {
		handleServiceError(w, "remove saved design", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListSaved handles GET /api/saved
func (c *EngagementController) ListSaved(w http.ResponseWriter, r *http.Request) {
	designs, err := c.engagement.ListSaved(r.Context(), middleware.VisitorToken(r.Context()))
	if err != nil {
		handleServiceError(w, "list saved designs", err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}
