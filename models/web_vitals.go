package models

// WebVitalEvent is one Core Web Vitals sample reported by the browser
// Example: {"name": "LCP", "value": 1830.5, "rating": "good", "path": "/designs/pricing-page", "navigationType": "navigate"}
type WebVitalEvent struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	Rating         string  `json:"rating"`
	Path           string  `json:"path"`
	NavigationType string  `json:"navigationType"`
}
