package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ui-design-gallery/service"
)

const maxBodyBytes = 1 << 20

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleServiceError maps service sentinels to HTTP statuses
func handleServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, service.ErrCodeTooShort):
		writeError(w, http.StatusBadRequest, "code_too_short", err.Error())
	case errors.Is(err, service.ErrUnanalyzable):
		writeError(w, http.StatusBadRequest, "unanalyzable", err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, service.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", "already exists")
	default:
		log.Printf("❌ %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal", fmt.Sprintf("failed to %s", op))
	}
}

// decodeJSON reads a size-limited JSON body into dst and writes a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}

// idParam parses the {id} URL parameter and writes a 400 when it is not a positive integer
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid id parameter")
		return 0, false
	}
	return id, true
}

// queryInt returns the named query parameter as an int, or 0 when missing or malformed
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}
