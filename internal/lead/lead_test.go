package lead

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgn-press/pipeline/internal/metadata"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantLead   bool
		wantPred   string
		confidence float64
	}{
		{
			name:       "two hints make a lead",
			text:       "Award winner revealed",
			wantLead:   true,
			wantPred:   "positive",
			confidence: 0.65,
		},
		{
			name:       "one hint in long text",
			text:       "The local bakery announced a brand new seasonal menu with over a dozen pastries available this week",
			wantLead:   true,
			wantPred:   "positive",
			confidence: 0.55,
		},
		{
			name:       "one hint in short text is not a lead",
			text:       "Award ceremony tonight",
			wantLead:   false,
			wantPred:   "negative",
			confidence: 0.45,
		},
		{
			name:       "no hints",
			text:       "Weather forecast for the weekend",
			wantLead:   false,
			wantPred:   "negative",
			confidence: 0.55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.wantLead, got.IsLead)
			assert.Equal(t, tt.wantPred, got.Prediction)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.Equal(t, []string{"keyword-heuristic"}, got.Reasons)
		})
	}
}

func TestClassifyConfidenceCap(t *testing.T) {
	text := strings.Join(positiveHints, " ")
	got := Classify(text)
	assert.True(t, got.IsLead)
	assert.Equal(t, 0.95, got.Confidence)
}

func TestPickHeader(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "longest of first three lines",
			text: "Short\nA considerably longer headline here\nMid line",
			want: "A considerably longer headline here",
		},
		{
			name: "first wins a tie",
			text: "Alpha line\nBravo line\nDelta",
			want: "Alpha line",
		},
		{
			name: "fourth line ignored",
			text: "a\nbb\nccc\ndddddddddddddddddddd",
			want: "ccc",
		},
		{
			name: "empty text",
			text: "",
			want: "Untitled lead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickHeader(tt.text))
		})
	}
}

func TestPickHeaderCapsLength(t *testing.T) {
	long := strings.Repeat("x", 400)
	assert.Len(t, pickHeader(long), 180)
}

func TestExtractPersonNames(t *testing.T) {
	text := "Jane Doe met John Smith yesterday. Jane Doe spoke again."
	assert.Equal(t, []string{"Jane Doe", "John Smith"}, extractPersonNames(text))
}

func TestExtractCompanyNames(t *testing.T) {
	text := "Backed by Acme Corp, with help from Widget Labs"
	assert.Equal(t, []string{"Acme Corp", "Widget Labs"}, extractCompanyNames(text))
}

func TestFindPhraseBBox(t *testing.T) {
	boxes := []metadata.WordBox{
		{Text: "Jane", BBox: []float64{10, 20, 60, 40}},
		{Text: "Doe,", BBox: []float64{70, 18, 120, 42}},
		{Text: "reporting", BBox: []float64{130, 20, 240, 40}},
	}

	bbox := FindPhraseBBox("Jane Doe", boxes)
	require.NotNil(t, bbox)
	assert.Equal(t, []float64{10, 18, 120, 42}, bbox)
}

func TestFindPhraseBBoxMissing(t *testing.T) {
	boxes := []metadata.WordBox{
		{Text: "Other", BBox: []float64{0, 0, 10, 10}},
	}
	assert.Nil(t, FindPhraseBBox("Jane Doe", boxes))
	assert.Nil(t, FindPhraseBBox("...", boxes))
}

func TestEnrich(t *testing.T) {
	text := "Award winner Jane Doe honored\nShort line"
	boxes := []metadata.WordBox{
		{Text: "Award", BBox: []float64{0, 0, 60, 20}},
		{Text: "winner", BBox: []float64{65, 0, 130, 20}},
		{Text: "Jane", BBox: []float64{135, 0, 175, 20}},
		{Text: "Doe", BBox: []float64{180, 0, 215, 20}},
		{Text: "honored", BBox: []float64{220, 0, 300, 20}},
	}

	got := Enrich(text, boxes)

	assert.Equal(t, "Award winner Jane Doe honored", got.ArticleHeader)
	assert.Equal(t, []float64{0, 0, 300, 20}, got.ArticleHeaderBBox)
	assert.Equal(t, []string{"Jane Doe"}, got.PersonNames)
	require.Len(t, got.PersonNameBoxes, 1)
	assert.Equal(t, []float64{135, 0, 215, 20}, got.PersonNameBoxes[0].BBox)
	assert.Empty(t, got.CompanyNames)
}
