package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	extRegex     = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)$`)
	versionRegex = regexp.MustCompile(`(?i)[-_ ]v?\d+$`)
)

// ParseFileName derives a title and category from an exported screenshot name.
// The first segment before "--" or "__" is read as the category when it maps to a known one.
// Example: "pricing--saas-plans-dark-v2.png" -> ("Saas Plans Dark", "pricing")
func ParseFileName(filename string) (title string, category string) {
	name := extRegex.ReplaceAllString(strings.TrimSpace(filename), "")

	category = DefaultCategory
	for _, sep := range []string{"--", "__"} {
		if idx := strings.Index(name, sep); idx > 0 {
			prefix := name[:idx]
			if mapped := MapCategory(prefix); IsKnownCategory(mapped) && mapped != DefaultCategory {
				category = mapped
				name = name[idx+len(sep):]
			}
			break
		}
	}

	name = versionRegex.ReplaceAllString(name, "")
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	title = strings.Join(words, " ")
	if title == "" {
		title = "Untitled design"
	}
	return title, category
}
