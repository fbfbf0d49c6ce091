package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Layout patterns reported by AnalyzeMarkup
const (
	LayoutGrid  = "grid"
	LayoutFlex  = "flex"
	LayoutMixed = "mixed"
	LayoutBasic = "basic"
)

// Metrics is the structural feature vector extracted from one markup document
type Metrics struct {
	SectionCount  int      `json:"sectionCount"`
	ButtonCount   int      `json:"buttonCount"`
	TextLength    int      `json:"textLength"`
	Colors        []string `json:"colors"`
	ImageCount    int      `json:"imageCount"`
	FormCount     int      `json:"formCount"`
	SemanticScore int      `json:"semanticScore"`
	LayoutPattern string   `json:"layoutPattern"`
	Breakpoints   int      `json:"breakpoints"`
	Complexity    int      `json:"complexity"`
}

var (
	// Opening or closing tag. Attribute values in quotes or JSX braces may contain '>'.
	tagRegex = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9.:-]*)((?:[^>"'{]|"[^"]*"|'[^']*'|\{[^{}]*\})*?)(/?)>`)

	scriptStyleRegex = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(?:script|style)>`)
	scriptRegex      = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	commentRegex     = regexp.MustCompile(`(?s)<!--.*?-->`)
	textNodeRegex    = regexp.MustCompile(`>([^<]+)<`)
	whitespaceRegex  = regexp.MustCompile(`\s+`)

	hexColorRegex   = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	gridRegex       = regexp.MustCompile(`(?i)\b(?:inline-)?grid\b`)
	flexRegex       = regexp.MustCompile(`(?i)\b(?:inline-)?(?:flex|flexbox)\b`)
	breakpointRegex = regexp.MustCompile(`\b(sm|md|lg|xl|2xl):`)

	hrefOrClassRegex = regexp.MustCompile(`(?i)\b(?:href|class|className)\s*=`)
	roleButtonRegex  = regexp.MustCompile(`(?i)\brole\s*=\s*["'{]*\s*["']?button\b`)
)

var structuralTags = map[string]bool{
	"section": true,
	"header":  true,
	"footer":  true,
	"main":    true,
	"nav":     true,
	"article": true,
	"aside":   true,
}

var semanticTags = map[string]bool{
	"section":    true,
	"header":     true,
	"footer":     true,
	"main":       true,
	"nav":        true,
	"article":    true,
	"aside":      true,
	"figure":     true,
	"figcaption": true,
	"details":    true,
	"summary":    true,
	"time":       true,
	"mark":       true,
	"address":    true,
}

var mediaTags = map[string]bool{
	"img":     true,
	"image":   true,
	"svg":     true,
	"picture": true,
	"video":   true,
}

var formTags = map[string]bool{
	"form":     true,
	"input":    true,
	"textarea": true,
	"select":   true,
}

// voidTags never have a closing tag, so they don't add nesting depth
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true, "track": true,
	"wbr": true,
}

// AnalyzeMarkup extracts Metrics from an HTML or JSX string.
// Returns nil when the input is empty or only whitespace.
func AnalyzeMarkup(code string) *Metrics {
	if strings.TrimSpace(code) == "" {
		return nil
	}

	uncommented := commentRegex.ReplaceAllString(code, "")
	stripped := scriptStyleRegex.ReplaceAllString(uncommented, "")
	// Colors, layout and breakpoints also read <style> bodies; comments and scripts are ignored
	styled := scriptRegex.ReplaceAllString(uncommented, "")

	var (
		tagCount   int
		structural int
		divCount   int
		semantic   int
		buttons    int
		images     int
		forms      int
		depth      int
		maxDepth   int
	)

	for _, m := range tagRegex.FindAllStringSubmatch(stripped, -1) {
		closing := m[1] == "/"
		name := strings.ToLower(m[2])
		attrs := m[3]
		selfClosing := m[4] == "/" || strings.HasSuffix(strings.TrimSpace(attrs), "/")

		if closing {
			if depth > 0 {
				depth--
			}
			continue
		}

		tagCount++
		if !selfClosing && !voidTags[name] {
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		}

		if structuralTags[name] {
			structural++
		}
		if name == "div" {
			divCount++
		}
		if semanticTags[name] {
			semantic++
		}
		if mediaTags[name] {
			images++
		}
		if formTags[name] {
			forms++
		}
		if isInteractive(name, attrs) {
			buttons++
		}
	}

	sectionCount := structural
	if sectionCount == 0 {
		sectionCount = int(math.Ceil(float64(divCount) / 4))
	}
	if sectionCount < 1 {
		sectionCount = 1
	}

	semanticScore := 0
	if tagCount > 0 {
		semanticScore = int(math.Round(float64(semantic) / float64(tagCount) * 100))
	}

	colors := ExtractColors(styled)

	return &Metrics{
		SectionCount:  sectionCount,
		ButtonCount:   buttons,
		TextLength:    textLength(stripped),
		Colors:        colors,
		ImageCount:    images,
		FormCount:     forms,
		SemanticScore: semanticScore,
		LayoutPattern: ClassifyLayout(styled),
		Breakpoints:   countBreakpoints(styled),
		Complexity:    complexity(maxDepth, tagCount, len(colors)),
	}
}

func isInteractive(name, attrs string) bool {
	switch {
	case name == "button":
		return true
	case name == "a" && hrefOrClassRegex.MatchString(attrs):
		return true
	default:
		return roleButtonRegex.MatchString(attrs)
	}
}

// textLength sums the visible text between tags, whitespace collapsed
func textLength(markup string) int {
	var b strings.Builder
	for _, m := range textNodeRegex.FindAllStringSubmatch(markup, -1) {
		text := strings.TrimSpace(whitespaceRegex.ReplaceAllString(m[1], " "))
		b.WriteString(text)
	}
	return utf8.RuneCountInString(b.String())
}

// ExtractColors returns the distinct hex colors in the markup, lowercased,
// with 3-digit forms expanded to 6 digits, in order of first appearance.
func ExtractColors(markup string) []string {
	seen := make(map[string]bool)
	colors := []string{}
	for _, m := range hexColorRegex.FindAllStringSubmatch(markup, -1) {
		hex := NormalizeHex(m[1])
		if seen[hex] {
			continue
		}
		seen[hex] = true
		colors = append(colors, hex)
	}
	return colors
}

// NormalizeHex turns "abc", "#ABC" or "#aabbcc" into "#aabbcc"
func NormalizeHex(hex string) string {
	hex = strings.ToLower(strings.TrimPrefix(hex, "#"))
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return "#" + hex
}

// ClassifyLayout reports which layout keywords the markup uses
func ClassifyLayout(markup string) string {
	hasGrid := gridRegex.MatchString(markup)
	hasFlex := flexRegex.MatchString(markup)
	switch {
	case hasGrid && hasFlex:
		return LayoutMixed
	case hasGrid:
		return LayoutGrid
	case hasFlex:
		return LayoutFlex
	default:
		return LayoutBasic
	}
}

func countBreakpoints(markup string) int {
	seen := make(map[string]bool)
	for _, m := range breakpointRegex.FindAllStringSubmatch(markup, -1) {
		seen[m[1]] = true
	}
	return len(seen)
}

// complexity combines nesting depth, element count and palette size into 0-100
func complexity(maxDepth, tagCount, colorCount int) int {
	score := float64(minInt(maxDepth, 10))*4 +
		float64(minInt(tagCount, 100))*0.4 +
		float64(minInt(colorCount, 10))*2
	return clampInt(int(math.Round(score)), 0, 100)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
