// Package pdf renders PDF pages to JPEG images using go-fitz.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/image/draw"
)

// Document wraps an open PDF. Callers must Close it when done.
type Document struct {
	doc *fitz.Document
}

// RenderedPage is one page encoded as JPEG.
type RenderedPage struct {
	PageNumber int
	Width      int
	Height     int
	JPEG       []byte
}

// Open parses a PDF from memory.
func Open(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &Document{doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// Close releases the underlying document.
func (d *Document) Close() error {
	return d.doc.Close()
}

// RenderPage rasterizes the 1-based page at the given DPI, downscales it to
// maxWidth when wider (0 disables scaling), and encodes it as JPEG.
func (d *Document) RenderPage(page, dpi, maxWidth, quality int) (RenderedPage, error) {
	if page < 1 || page > d.doc.NumPage() {
		return RenderedPage{}, fmt.Errorf("page %d out of range 1..%d", page, d.doc.NumPage())
	}

	img, err := d.doc.ImageDPI(page-1, float64(dpi))
	if err != nil {
		return RenderedPage{}, fmt.Errorf("render page %d: %w", page, err)
	}

	scaled := scaleToWidth(img, maxWidth)
	bounds := scaled.Bounds()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
		return RenderedPage{}, fmt.Errorf("encode page %d: %w", page, err)
	}

	return RenderedPage{
		PageNumber: page,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		JPEG:       buf.Bytes(),
	}, nil
}

// scaleToWidth downscales img to maxWidth preserving aspect ratio. Images
// already narrow enough, or a maxWidth of 0, pass through untouched. Upscaling
// never happens.
func scaleToWidth(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	height := int(float64(bounds.Dy()) * float64(maxWidth) / float64(bounds.Dx()))
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
