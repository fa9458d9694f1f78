// Package ocr recognizes word-level text boxes on page images using
// Tesseract via gosseract.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
)

const (
	// EngineName and EngineVersion identify the recognizer in API responses.
	EngineName    = "TESSERACT"
	EngineVersion = "5.x"
)

// Engine runs word-level OCR. Each recognition uses a fresh gosseract client;
// the client is not safe for concurrent reuse.
type Engine struct {
	clientFactory func() *gosseract.Client
	logger        *observability.Logger
}

// NewEngine constructs a Tesseract-backed engine.
func NewEngine(logger *observability.Logger) *Engine {
	return &Engine{
		clientFactory: gosseract.NewClient,
		logger:        logger.WithComponent("ocr"),
	}
}

// RecognizeWords OCRs an encoded page image and returns its word boxes in
// pixel coordinates.
func (e *Engine) RecognizeWords(ctx context.Context, image []byte) ([]metadata.WordBox, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("recognize words: %w", err)
	}

	words := wordBoxesFromBounds(boxes)
	e.logger.Debug().Int("words", len(words)).Msg("page recognized")
	return words, nil
}

// wordBoxesFromBounds converts gosseract bounding boxes into word boxes,
// dropping blank words.
func wordBoxesFromBounds(boxes []gosseract.BoundingBox) []metadata.WordBox {
	words := make([]metadata.WordBox, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		words = append(words, metadata.WordBox{
			Text: text,
			BBox: []float64{
				float64(b.Box.Min.X),
				float64(b.Box.Min.Y),
				float64(b.Box.Max.X),
				float64(b.Box.Max.Y),
			},
		})
	}
	return words
}
