package controller

import (
	"errors"
	"net/http"

	"ui-design-gallery/models"
	"ui-design-gallery/service"
)

// WebVitalsController ingests browser performance beacons
type WebVitalsController struct {
	vitals service.WebVitalsServiceInterface
}

// NewWebVitalsController creates a new WebVitalsController
func NewWebVitalsController(vitals service.WebVitalsServiceInterface) *WebVitalsController {
	return &WebVitalsController{vitals: vitals}
}

// Record handles POST /api/web-vitals
func (c *WebVitalsController) Record(w http.ResponseWriter, r *http.Request) {
	var event models.WebVitalEvent
	if !decodeJSON(w, r, &event) {
		return
	}

	if err := c.vitals.Record(r.Context(), event); err != nil {
		if errors.Is(err, service.ErrTableMissing) {
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "dropped", "code": "table_missing"})
			return
		}
		handleServiceError(w, "record web vital", err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
