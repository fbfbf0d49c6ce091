package controller

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ui-design-gallery/models"
	"ui-design-gallery/service"
)

// DesignController handles HTTP requests for the design catalog
type DesignController struct {
	designs    service.DesignServiceInterface
	engagement service.EngagementServiceInterface
	previews   service.PreviewServiceInterface
	importer   service.ImportServiceInterface
}

// NewDesignController creates a new DesignController.
// previews and importer may be nil when Chrome or Drive are not configured.
func NewDesignController(
	designs service.DesignServiceInterface,
	engagement service.EngagementServiceInterface,
	previews service.PreviewServiceInterface,
	importer service.ImportServiceInterface,
) *DesignController {
	return &DesignController{
		designs:    designs,
		engagement: engagement,
		previews:   previews,
		importer:   importer,
	}
}

// listParams reads ?category=&search=&sort=&limit=&offset=
func listParams(r *http.Request) models.DesignListParams {
	q := r.URL.Query()
	params := models.DesignListParams{
		Sort:   strings.TrimSpace(q.Get("sort")),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := strings.TrimSpace(q.Get("category")); v != "" {
		params.Category = &v
	}
	if v := strings.TrimSpace(q.Get("search")); v != "" {
		params.Search = &v
	}
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		params.Status = &v
	}
	return params
}

// List handles GET /api/designs
func (c *DesignController) List(w http.ResponseWriter, r *http.Request) {
	resp, err := c.designs.List(r.Context(), listParams(r))
	if err != nil {
		handleServiceError(w, "list designs", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Popular handles GET /api/designs/popular?limit=
func (c *DesignController) Popular(w http.ResponseWriter, r *http.Request) {
	designs, err := c.designs.Popular(r.Context(), queryInt(r, "limit"))
	if err != nil {
		handleServiceError(w, "list popular designs", err)
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

// GetBySlug handles GET /api/designs/{slug} and counts a view
func (c *DesignController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		writeError(w, http.StatusBadRequest, "invalid_slug", "slug parameter is required")
		return
	}

	design, err := c.designs.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, "get design", err)
		return
	}

	// A failed view count must not fail the page
	if view, err := c.engagement.RecordView(r.Context(), design); err == nil {
		design.Views = view.Views
	}

	writeJSON(w, http.StatusOK, design)
}

// Preview handles GET /api/designs/{id}/preview?size=thumb|medium
func (c *DesignController) Preview(w http.ResponseWriter, r *http.Request) {
	if c.previews == nil {
		writeError(w, http.StatusServiceUnavailable, "preview_disabled", "preview rendering is not configured")
		return
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	size := strings.TrimSpace(r.URL.Query().Get("size"))
	if size == "" {
		size = service.PreviewSizeThumb
	}

	data, err := c.previews.GetPreview(r.Context(), id, size)
	if err != nil {
		handleServiceError(w, "render preview", err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// AdminList handles GET /api/admin/designs?status=
func (c *DesignController) AdminList(w http.ResponseWriter, r *http.Request) {
	resp, err := c.designs.AdminList(r.Context(), listParams(r))
	if err != nil {
		handleServiceError(w, "list designs", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/admin/designs
func (c *DesignController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DesignCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	design, err := c.designs.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, "create design", err)
		return
	}

	log.Printf("✅ Create design: id=%d, slug=%s", design.ID, design.Slug)
	writeJSON(w, http.StatusCreated, design)
}

// Update handles PUT /api/admin/designs/{id}
func (c *DesignController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var req models.DesignUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	design, err := c.designs.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, "update design", err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// Archive handles DELETE /api/admin/designs/{id}
func (c *DesignController) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := c.designs.Archive(r.Context(), id); err != nil {
		handleServiceError(w, "archive design", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /api/admin/designs/import?folderId=
// It lists the Drive folder and inserts a draft design for each new image.
func (c *DesignController) Import(w http.ResponseWriter, r *http.Request) {
	if c.importer == nil {
		writeError(w, http.StatusServiceUnavailable, "import_disabled", "Google Drive import is not configured")
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folderId"))
	if folderID == "" {
		writeError(w, http.StatusBadRequest, "invalid_input", "folderId parameter is required")
		return
	}

	result, err := c.importer.ImportFromDrive(r.Context(), folderID)
	if err != nil {
		handleServiceError(w, "import designs", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
