package models

import "time"

// Design statuses
const (
	DesignStatusDraft     = "draft"
	DesignStatusPending   = "pending"
	DesignStatusPublished = "published"
	DesignStatusArchived  = "archived"
)

// Design represents a catalog row in the designs table
type Design struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Code        string    `json:"code,omitempty"`
	Likes       int       `json:"likes"`
	Views       int       `json:"views"`
	Status      string    `json:"status"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DesignCandidate is the slim projection used by the code-match flow
type DesignCandidate struct {
	ID       int64
	Title    string
	ImageURL string
	Category string
	Slug     string
	Code     string
}

// DesignCreateRequest represents the request body for creating a design
// Example: {"title": "SaaS pricing page", "category": "pricing", "code": "<section>...</section>", "status": "published"}
type DesignCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Code        string `json:"code"`
	Status      string `json:"status"`
}

// DesignUpdateRequest represents a partial update. Nil fields are left unchanged.
type DesignUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	Code        *string `json:"code"`
	Status      *string `json:"status"`
}

// DesignListParams represents optional filters for listing designs
type DesignListParams struct {
	Category *string
	Status   *string
	Search   *string
	Sort     string // "new", "popular", "likes", "views"
	Limit    int
	Offset   int
}

// DesignListResponse is a page of designs
type DesignListResponse struct {
	Designs []Design `json:"designs"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
}
