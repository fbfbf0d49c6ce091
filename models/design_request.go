package models

import "time"

// Design request statuses
const (
	RequestStatusOpen       = "open"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)

// DesignRequest is a user-submitted brief that visitors vote on
type DesignRequest struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Email       string    `json:"-"`
	VoteCount   int       `json:"voteCount"`
	Status      string    `json:"status"`
	DesignID    *int64    `json:"designId,omitempty"`
	DesignSlug  string    `json:"designSlug,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateDesignRequestRequest represents the request body for submitting a brief
// Example: {"title": "Dark mode dashboard", "description": "Analytics with charts", "category": "dashboard"}
type CreateDesignRequestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Email       string `json:"email,omitempty"`
}

// UpdateDesignRequestRequest links a request to a generated design and/or changes its status
type UpdateDesignRequestRequest struct {
	Status   *string `json:"status"`
	DesignID *int64  `json:"designId"`
}

// VoteResponse is returned after a successful vote
type VoteResponse struct {
	RequestID int64 `json:"requestId"`
	VoteCount int   `json:"voteCount"`
}
