package analysis

import "math"

// Weights of each sub-score in SimilarityScore. They sum to 1.
const (
	weightSections   = 0.20
	weightButtons    = 0.15
	weightText       = 0.15
	weightColors     = 0.20
	weightImages     = 0.10
	weightLayout     = 0.10
	weightComplexity = 0.05
	weightForms      = 0.05
)

// Distance at which a closeness term reaches zero
const (
	scaleSections   = 10
	scaleButtons    = 15
	scaleText       = 2000
	scaleImages     = 10
	scaleComplexity = 100
	scaleForms      = 10
)

// Breakdown holds the individual sub-scores, each in [0, 1]
type Breakdown struct {
	Sections   float64 `json:"sections"`
	Buttons    float64 `json:"buttons"`
	TextLength float64 `json:"textLength"`
	Colors     float64 `json:"colors"`
	Images     float64 `json:"images"`
	Layout     float64 `json:"layout"`
	Complexity float64 `json:"complexity"`
	Forms      float64 `json:"forms"`
}

// Compare computes the sub-scores for a pair of metrics. Either side nil yields a zero Breakdown.
func Compare(a, b *Metrics) Breakdown {
	if a == nil || b == nil {
		return Breakdown{}
	}
	return Breakdown{
		Sections:   closeness(a.SectionCount, b.SectionCount, scaleSections),
		Buttons:    closeness(a.ButtonCount, b.ButtonCount, scaleButtons),
		TextLength: closeness(a.TextLength, b.TextLength, scaleText),
		Colors:     paletteOverlap(a.Colors, b.Colors),
		Images:     closeness(a.ImageCount, b.ImageCount, scaleImages),
		Layout:     layoutMatch(a.LayoutPattern, b.LayoutPattern),
		Complexity: closeness(a.Complexity, b.Complexity, scaleComplexity),
		Forms:      closeness(a.FormCount, b.FormCount, scaleForms),
	}
}

// Total is the weighted sum of the sub-scores, rounded to 3 decimals
func (b Breakdown) Total() float64 {
	sum := b.Sections*weightSections +
		b.Buttons*weightButtons +
		b.TextLength*weightText +
		b.Colors*weightColors +
		b.Images*weightImages +
		b.Layout*weightLayout +
		b.Complexity*weightComplexity +
		b.Forms*weightForms
	return round3(sum)
}

// SimilarityScore scores two metrics records in [0, 1]. The score is symmetric.
func SimilarityScore(a, b *Metrics) float64 {
	if a == nil || b == nil {
		return 0
	}
	return Compare(a, b).Total()
}

func closeness(a, b int, scale float64) float64 {
	delta := math.Abs(float64(a - b))
	return math.Max(0, 1-delta/scale)
}

// paletteOverlap is |A∩B| / |A∪B|. Two empty palettes are neutral (0.5).
func paletteOverlap(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.5
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]bool, len(a))
	for _, c := range a {
		set[NormalizeHex(c)] = true
	}
	union := len(set)
	shared := 0
	counted := make(map[string]bool, len(b))
	for _, c := range b {
		c = NormalizeHex(c)
		if counted[c] {
			continue
		}
		counted[c] = true
		if set[c] {
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}

func layoutMatch(a, b string) float64 {
	switch {
	case a == b:
		return 1
	case a == LayoutMixed || b == LayoutMixed:
		return 0.5
	default:
		return 0.3
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
