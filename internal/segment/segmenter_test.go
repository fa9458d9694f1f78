package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgn-press/pipeline/internal/metadata"
)

func TestFromWordFootprint(t *testing.T) {
	boxes := []metadata.WordBox{
		{Text: "headline", BBox: []float64{100, 50, 300, 90}},
		{Text: "body", BBox: []float64{80, 120, 320, 150}},
	}

	segments := FromWordFootprint(boxes, 1000, 1400)

	require.Len(t, segments, 1)
	assert.Equal(t, []float64{60, 30, 340, 170}, segments[0].BBox)
	assert.Equal(t, "ARTICLE", segments[0].Type)
}

func TestFromWordFootprintClampsToPage(t *testing.T) {
	boxes := []metadata.WordBox{
		{Text: "edge", BBox: []float64{5, 10, 995, 1395}},
	}

	segments := FromWordFootprint(boxes, 1000, 1400)

	require.Len(t, segments, 1)
	assert.Equal(t, []float64{0, 0, 1000, 1400}, segments[0].BBox)
}

func TestFromWordFootprintNoWords(t *testing.T) {
	assert.Nil(t, FromWordFootprint(nil, 1000, 1400))
	assert.Nil(t, FromWordFootprint([]metadata.WordBox{{Text: "bad", BBox: []float64{1}}}, 1000, 1400))
}
