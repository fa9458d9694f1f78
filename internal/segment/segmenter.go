// Package segment estimates article regions on a page. Without a detection
// model, the only signal is the OCR word footprint: one padded box around
// every recognized word.
package segment

import (
	"github.com/tgn-press/pipeline/internal/metadata"
)

const footprintPadding = 20.0

// Segment is a rectangular page region.
type Segment struct {
	BBox []float64 `json:"bbox"`
	Type string    `json:"type"`
}

// FromWordFootprint builds a single segment spanning all word boxes, padded
// and clamped to the page. No words means no segments.
func FromWordFootprint(wordBoxes []metadata.WordBox, pageWidth, pageHeight int) []Segment {
	var found bool
	var minX, minY, maxX, maxY float64
	for _, word := range wordBoxes {
		if len(word.BBox) != 4 {
			continue
		}
		if !found {
			minX, minY, maxX, maxY = word.BBox[0], word.BBox[1], word.BBox[2], word.BBox[3]
			found = true
			continue
		}
		if word.BBox[0] < minX {
			minX = word.BBox[0]
		}
		if word.BBox[1] < minY {
			minY = word.BBox[1]
		}
		if word.BBox[2] > maxX {
			maxX = word.BBox[2]
		}
		if word.BBox[3] > maxY {
			maxY = word.BBox[3]
		}
	}
	if !found {
		return nil
	}

	bbox := []float64{
		clamp(minX-footprintPadding, 0, float64(pageWidth)),
		clamp(minY-footprintPadding, 0, float64(pageHeight)),
		clamp(maxX+footprintPadding, 0, float64(pageWidth)),
		clamp(maxY+footprintPadding, 0, float64(pageHeight)),
	}
	return []Segment{{BBox: bbox, Type: "ARTICLE"}}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
