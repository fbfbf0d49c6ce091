package utils

import (
	"strings"
)

// DefaultCategory is used when a category cannot be mapped
const DefaultCategory = "other"

// categoryMap maps free-form category names and common aliases to catalog categories
var categoryMap = map[string]string{
	"landing":      "landing",
	"landing page": "landing",
	"hero":         "landing",
	"dashboard":    "dashboard",
	"admin":        "dashboard",
	"analytics":    "dashboard",
	"pricing":      "pricing",
	"pricing page": "pricing",
	"plans":        "pricing",
	"auth":         "auth",
	"login":        "auth",
	"signup":       "auth",
	"sign up":      "auth",
	"ecommerce":    "ecommerce",
	"e-commerce":   "ecommerce",
	"shop":         "ecommerce",
	"store":        "ecommerce",
	"checkout":     "ecommerce",
	"portfolio":    "portfolio",
	"blog":         "blog",
	"article":      "blog",
	"form":         "form",
	"contact":      "form",
	"settings":     "settings",
	"profile":      "settings",
	"mobile":       "mobile",
	"app":          "mobile",
	"email":        "email",
	"newsletter":   "email",
	"component":    "component",
	"components":   "component",
	"card":         "component",
	"navbar":       "component",
	"footer":       "component",
	"other":        DefaultCategory,
}

// MapCategory normalizes a category name to a catalog category
// Input is normalized to lowercase before mapping
func MapCategory(category string) string {
	categoryLower := strings.ToLower(strings.TrimSpace(category))
	if categoryLower == "" {
		return DefaultCategory
	}

	if mapped, exists := categoryMap[categoryLower]; exists {
		return mapped
	}

	// Unknown categories are kept as slugs so new ones can be introduced from the admin
	return Slugify(categoryLower)
}

// IsKnownCategory reports whether the category is one of the mapped catalog categories
func IsKnownCategory(category string) bool {
	categoryLower := strings.ToLower(strings.TrimSpace(category))
	for _, mapped := range categoryMap {
		if mapped == categoryLower {
			return true
		}
	}
	return false
}
