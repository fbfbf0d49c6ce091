package controller

import (
	"errors"
	"log"
	"net/http"

	"ui-design-gallery/app/middleware"
	"ui-design-gallery/models"
	"ui-design-gallery/service"
)

// RequestController handles design requests and their votes
type RequestController struct {
	requests service.RequestServiceInterface
}

// NewRequestController creates a new RequestController
func NewRequestController(requests service.RequestServiceInterface) *RequestController {
	return &RequestController{requests: requests}
}

// Create handles POST /api/requests
func (c *RequestController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDesignRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := c.requests.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, "create design request", err)
		return
	}

	log.Printf("✅ Create design request: id=%d", created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/requests?status=&sort=votes|new
func (c *RequestController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := c.requests.List(r.Context(), q.Get("status"), q.Get("sort"))
	if err != nil {
		handleServiceError(w, "list design requests", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Vote handles POST /api/requests/{id}/vote. One vote per visitor.
func (c *RequestController) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	resp, err := c.requests.Vote(r.Context(), id, middleware.VisitorToken(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "already_voted", "you already voted for this request")
			return
		}
		handleServiceError(w, "vote", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/admin/requests/{id}
func (c *RequestController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateDesignRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := c.requests.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, "update design request", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
