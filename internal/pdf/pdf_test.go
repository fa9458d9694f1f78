package pdf

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRange(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		start     int
		end       int
		want      []int
		wantErr   bool
	}{
		{name: "full document by default", pageCount: 3, want: []int{1, 2, 3}},
		{name: "explicit window", pageCount: 10, start: 2, end: 4, want: []int{2, 3, 4}},
		{name: "single page", pageCount: 5, start: 3, end: 3, want: []int{3}},
		{name: "open end", pageCount: 4, start: 2, want: []int{2, 3, 4}},
		{name: "start beyond count", pageCount: 2, start: 5, end: 5, wantErr: true},
		{name: "end before start", pageCount: 10, start: 4, end: 2, wantErr: true},
		{name: "end beyond count", pageCount: 3, start: 1, end: 9, wantErr: true},
		{name: "empty document", pageCount: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageRange(tt.pageCount, tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScaleToWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2400, 3000))

	scaled := scaleToWidth(src, 1200)
	assert.Equal(t, 1200, scaled.Bounds().Dx())
	assert.Equal(t, 1500, scaled.Bounds().Dy())
}

func TestScaleToWidthNoUpscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 600))

	scaled := scaleToWidth(src, 1200)
	assert.Equal(t, 800, scaled.Bounds().Dx())
	assert.Equal(t, 600, scaled.Bounds().Dy())
}

func TestScaleToWidthDisabled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 5000, 100))

	scaled := scaleToWidth(src, 0)
	assert.Equal(t, 5000, scaled.Bounds().Dx())
}

func TestOpenEmpty(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)
}
