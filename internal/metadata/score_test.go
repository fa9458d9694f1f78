package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreNameCandidate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "too short", text: "ab", want: disqualifiedScore},
		{name: "too long", text: strings.Repeat("a", 81), want: disqualifiedScore},
		{name: "too many words", text: "one two three four five six seven eight nine ten eleven twelve thirteen", want: disqualifiedScore},
		{name: "too few letters", text: "a1 2345", want: disqualifiedScore},
		{name: "digit heavy", text: "abc 123456", want: disqualifiedScore},
		{name: "page marker", text: "Page 12 of 30", want: disqualifiedScore},
		{name: "website", text: "www.example.com", want: disqualifiedScore},
		{name: "url fragment", text: "see http example", want: disqualifiedScore},
		{name: "all caps masthead", text: "THE DAILY GAZETTE", want: 1.0 + 0.36 + 0.7},
		{name: "mixed case", text: "The daily gazette", want: 1.0 + 0.36 + (1.0/15.0)*0.7},
		{name: "ampersand bonus", text: "Town & Country", want: 1.0 + 0.36 + (2.0/11.0)*0.7 + 0.1},
		{name: "separators trimmed", text: "-- The Herald --", want: 1.0 + 0.24 + (2.0/9.0)*0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoreNameCandidate(tt.text), 1e-9)
		})
	}
}

func TestExtractName(t *testing.T) {
	pages := []Page{
		{
			PageNumber: 1,
			WordBoxes: []WordBox{
				{Text: "THE", BBox: []float64{10, 20, 80, 60}},
				{Text: "DAILY", BBox: []float64{90, 20, 190, 60}},
				{Text: "GAZETTE", BBox: []float64{200, 20, 360, 60}},
				{Text: "Page", BBox: []float64{10, 100, 60, 120}},
				{Text: "1", BBox: []float64{65, 100, 75, 120}},
			},
		},
	}

	name, score := ExtractName(pages)
	assert.Equal(t, "THE DAILY GAZETTE", name)
	// 1.0 base + 0.36 words + 0.7 uppercase + 0.35 first-page bonus.
	assert.InDelta(t, 2.41, score, 1e-9)
}

func TestExtractNameFirstPageBonusWins(t *testing.T) {
	masthead := func(n int, words ...string) Page {
		var boxes []WordBox
		x := 0.0
		for _, w := range words {
			boxes = append(boxes, WordBox{Text: w, BBox: []float64{x, 10, x + 50, 40}})
			x += 60
		}
		return Page{PageNumber: n, WordBoxes: boxes}
	}

	pages := []Page{
		masthead(2, "EVENING", "STANDARD"),
		masthead(1, "EVENING", "HERALD"),
	}

	name, _ := ExtractName(pages)
	assert.Equal(t, "EVENING HERALD", name)
}

func TestExtractNameMastheadBand(t *testing.T) {
	pages := []Page{
		{
			PageNumber: 1,
			PageHeight: 1000,
			WordBoxes: []WordBox{
				// Center y = 500, below the top 30% band.
				{Text: "DEEP", BBox: []float64{0, 480, 80, 520}},
				{Text: "HEADLINE", BBox: []float64{90, 480, 250, 520}},
			},
		},
	}

	name, score := ExtractName(pages)
	assert.Equal(t, "", name)
	assert.Zero(t, score)
}

func TestExtractNameTieKeepsFirst(t *testing.T) {
	pages := []Page{
		{
			PageNumber: 1,
			WordBoxes: []WordBox{
				{Text: "ALPHA", BBox: []float64{0, 10, 80, 40}},
				{Text: "TIMES", BBox: []float64{90, 10, 170, 40}},
				{Text: "OMEGA", BBox: []float64{0, 100, 80, 130}},
				{Text: "TIMES", BBox: []float64{90, 100, 170, 130}},
			},
		},
	}

	name, _ := ExtractName(pages)
	assert.Equal(t, "ALPHA TIMES", name)
}

func TestExtractNameNoCandidates(t *testing.T) {
	name, score := ExtractName([]Page{{PageNumber: 1}})
	require.Empty(t, name)
	assert.Zero(t, score)
}
