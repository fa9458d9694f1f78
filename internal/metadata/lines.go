package metadata

import (
	"math"
	"sort"
	"strings"
)

// lineGroupTolerance is the maximum distance, in pixels, between a word's
// vertical center and a line's running-average center for the word to join
// that line.
const lineGroupTolerance = 12.0

// Line is a reconstructed horizontal text line. Y is the running average of
// the member words' vertical centers.
type Line struct {
	Y    float64
	Text string
}

// ReconstructLines groups word boxes into text lines by vertical proximity
// and returns them ordered top to bottom. Malformed boxes and blank tokens
// are dropped. The scan order is fixed by a stable (y1, x1) pre-sort, so the
// grouping is deterministic for a given input.
func ReconstructLines(boxes []WordBox) []Line {
	ordered := make([]WordBox, 0, len(boxes))
	for _, box := range boxes {
		if len(box.BBox) != 4 || strings.TrimSpace(box.Text) == "" {
			continue
		}
		ordered = append(ordered, box)
	}
	if len(ordered) == 0 {
		return nil
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].BBox[1] != ordered[j].BBox[1] {
			return ordered[i].BBox[1] < ordered[j].BBox[1]
		}
		return ordered[i].BBox[0] < ordered[j].BBox[0]
	})

	type lineGroup struct {
		y     float64
		count int
		words []WordBox
	}

	var groups []*lineGroup
	for _, word := range ordered {
		yCenter := (word.BBox[1] + word.BBox[3]) / 2
		var matched *lineGroup
		for _, g := range groups {
			if math.Abs(yCenter-g.y) <= lineGroupTolerance {
				matched = g
				break
			}
		}
		if matched == nil {
			matched = &lineGroup{}
			groups = append(groups, matched)
		}
		matched.count++
		matched.y = (matched.y*float64(matched.count-1) + yCenter) / float64(matched.count)
		matched.words = append(matched.words, word)
	}

	lines := make([]Line, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.words, func(i, j int) bool {
			return g.words[i].BBox[0] < g.words[j].BBox[0]
		})
		parts := make([]string, 0, len(g.words))
		for _, w := range g.words {
			parts = append(parts, w.Text)
		}
		text := NormalizeSpaces(strings.Join(parts, " "))
		if text == "" {
			continue
		}
		lines = append(lines, Line{Y: g.y, Text: text})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y < lines[j].Y })
	return lines
}

// NormalizeSpaces collapses runs of whitespace to single spaces and trims
// the ends.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// sortedPages returns a copy of pages ordered ascending by page number.
func sortedPages(pages []Page) []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PageNumber < out[j].PageNumber })
	return out
}
