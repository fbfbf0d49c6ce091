package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() *Metrics {
	return &Metrics{
		SectionCount:  4,
		ButtonCount:   6,
		TextLength:    800,
		Colors:        []string{"#0f172a", "#ffffff", "#6366f1"},
		ImageCount:    3,
		FormCount:     2,
		SemanticScore: 40,
		LayoutPattern: LayoutGrid,
		Breakpoints:   2,
		Complexity:    55,
	}
}

func TestSimilarityScore_Identical(t *testing.T) {
	m := sampleMetrics()
	assert.InDelta(t, 1.0, SimilarityScore(m, m), 1e-9)
}

func TestSimilarityScore_IdenticalMarkup(t *testing.T) {
	a := AnalyzeMarkup(landingPage)
	b := AnalyzeMarkup(landingPage)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.InDelta(t, 1.0, SimilarityScore(a, b), 1e-9)
}

func TestSimilarityScore_Symmetric(t *testing.T) {
	a := sampleMetrics()
	b := &Metrics{
		SectionCount:  9,
		ButtonCount:   1,
		TextLength:    3100,
		Colors:        []string{"#ffffff", "#000000"},
		ImageCount:    0,
		FormCount:     5,
		LayoutPattern: LayoutMixed,
		Complexity:    90,
	}
	assert.Equal(t, SimilarityScore(a, b), SimilarityScore(b, a))

	c := AnalyzeMarkup(`<section class="flex"><button>Go</button></section>`)
	d := AnalyzeMarkup(landingPage)
	assert.Equal(t, SimilarityScore(c, d), SimilarityScore(d, c))
}

func TestSimilarityScore_Nil(t *testing.T) {
	assert.Equal(t, 0.0, SimilarityScore(nil, sampleMetrics()))
	assert.Equal(t, 0.0, SimilarityScore(sampleMetrics(), nil))
}

func TestSimilarityScore_RoundedToThreeDecimals(t *testing.T) {
	a := sampleMetrics()
	b := sampleMetrics()
	b.TextLength = 801
	score := SimilarityScore(a, b)
	// text term is 1 - 1/2000 = 0.9995, weighted 0.149925
	assert.Equal(t, 1.0, score)

	b.TextLength = 1000
	assert.Equal(t, 0.985, SimilarityScore(a, b))
}

func TestCompare_Breakdown(t *testing.T) {
	a := sampleMetrics()
	b := sampleMetrics()
	b.SectionCount = 9 // delta 5 of 10
	b.Colors = []string{"#0F172A", "#123456"}
	b.LayoutPattern = LayoutFlex

	got := Compare(a, b)
	assert.InDelta(t, 0.5, got.Sections, 1e-9)
	// shared {#0f172a}, union of 4
	assert.InDelta(t, 0.25, got.Colors, 1e-9)
	assert.InDelta(t, 0.3, got.Layout, 1e-9)
	assert.InDelta(t, 1.0, got.Buttons, 1e-9)

	want := 0.5*0.20 + 0.15 + 0.15 + 0.25*0.20 + 0.10 + 0.3*0.10 + 0.05 + 0.05
	assert.InDelta(t, want, got.Total(), 1e-3)
}

func TestPaletteOverlap(t *testing.T) {
	assert.Equal(t, 0.5, paletteOverlap(nil, nil))
	assert.Equal(t, 0.0, paletteOverlap([]string{"#ffffff"}, nil))
	assert.Equal(t, 1.0, paletteOverlap([]string{"#fff"}, []string{"#FFFFFF"}))
}

func TestLayoutMatch(t *testing.T) {
	assert.Equal(t, 1.0, layoutMatch(LayoutGrid, LayoutGrid))
	assert.Equal(t, 0.5, layoutMatch(LayoutMixed, LayoutFlex))
	assert.Equal(t, 0.5, layoutMatch(LayoutGrid, LayoutMixed))
	assert.Equal(t, 0.3, layoutMatch(LayoutGrid, LayoutFlex))
	assert.Equal(t, 0.3, layoutMatch(LayoutBasic, LayoutGrid))
}

func TestCloseness(t *testing.T) {
	assert.Equal(t, 1.0, closeness(3, 3, scaleSections))
	assert.Equal(t, 0.0, closeness(0, 25, scaleSections))
	assert.InDelta(t, 0.8, closeness(2, 4, scaleSections), 1e-9)
}
