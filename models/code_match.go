package models

import (
	"time"

	"ui-design-gallery/analysis"
)

// CodeMatchRequest represents the body of POST /api/code-match
type CodeMatchRequest struct {
	Code string `json:"code"`
	Save bool   `json:"save"`
}

// MatchResult is one ranked catalog entry
type MatchResult struct {
	DesignID  int64              `json:"designId"`
	Title     string             `json:"title"`
	Slug      string             `json:"slug"`
	ImageURL  string             `json:"imageUrl"`
	Category  string             `json:"category"`
	Score     float64            `json:"score"`
	Breakdown analysis.Breakdown `json:"breakdown"`
}

// CodeMatch is a scored query, optionally persisted under a share hash
type CodeMatch struct {
	Hash      string            `json:"hash,omitempty"`
	Code      string            `json:"code,omitempty"`
	Metrics   *analysis.Metrics `json:"metrics"`
	Results   []MatchResult     `json:"results"`
	CreatedAt time.Time         `json:"createdAt"`
}
