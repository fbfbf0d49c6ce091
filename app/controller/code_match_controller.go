package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ui-design-gallery/models"
	"ui-design-gallery/service"
)

// CodeMatchController exposes the code-match recommender
type CodeMatchController struct {
	matches service.MatchServiceInterface
}

// NewCodeMatchController creates a new CodeMatchController
func NewCodeMatchController(matches service.MatchServiceInterface) *CodeMatchController {
	return &CodeMatchController{matches: matches}
}

// Match handles POST /api/code-match
// Body: {"code": "<section>...</section>", "save": true}
// With save the result is persisted and returned with a share hash.
func (c *CodeMatchController) Match(w http.ResponseWriter, r *http.Request) {
	var req models.CodeMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var (
		match *models.CodeMatch
		err   error
	)
	if req.Save {
		match, err = c.matches.Save(r.Context(), req.Code)
	} else {
		match, err = c.matches.Recommend(r.Context(), req.Code)
	}
	if err != nil {
		handleServiceError(w, "match code", err)
		return
	}

	log.Printf("🔍 Code match: %d results", len(match.Results))
	writeJSON(w, http.StatusOK, match)
}

// GetByHash handles GET /api/code-match/{hash}
func (c *CodeMatchController) GetByHash(w http.ResponseWriter, r *http.Request) {
	match, err := c.matches.GetByHash(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		handleServiceError(w, "get code match", err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}
