package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
	"github.com/tgn-press/pipeline/internal/ocr"
)

// Recognizer runs word-level OCR on an encoded image.
type Recognizer interface {
	RecognizeWords(ctx context.Context, image []byte) ([]metadata.WordBox, error)
}

// OCRHandler recognizes word boxes on remote page images.
type OCRHandler struct {
	logger     *observability.Logger
	fetcher    Fetcher
	recognizer Recognizer
}

// NewOCRHandler creates an OCR handler.
func NewOCRHandler(logger *observability.Logger, fetcher Fetcher, recognizer Recognizer) *OCRHandler {
	return &OCRHandler{logger: logger, fetcher: fetcher, recognizer: recognizer}
}

// OCRPageRequestDTO represents the API request for page OCR.
type OCRPageRequestDTO struct {
	PublicationID string `json:"publication_id"`
	PageNumber    int    `json:"page_number"`
	ImageURL      string `json:"image_url"`
	PageWidth     int    `json:"page_width,omitempty"`
	PageHeight    int    `json:"page_height,omitempty"`
}

// OCRPageResponseDTO represents the API response for page OCR.
type OCRPageResponseDTO struct {
	Engine    string             `json:"engine"`
	Version   string             `json:"version"`
	WordBoxes []metadata.WordBox `json:"word_boxes"`
}

// Page handles POST /ocr/page.
func (h *OCRHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req OCRPageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "image_url is required", "")
		return
	}

	image, err := h.fetcher.Download(ctx, req.ImageURL)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to download image", err.Error())
		return
	}

	words, err := h.recognizer.RecognizeWords(ctx, image)
	if err != nil {
		h.logger.Error().Err(err).Str("publication_id", req.PublicationID).Int("page", req.PageNumber).Msg("OCR failed")
		writeError(w, http.StatusInternalServerError, "OCR failed", err.Error())
		return
	}
	if words == nil {
		words = []metadata.WordBox{}
	}

	writeJSON(w, http.StatusOK, OCRPageResponseDTO{
		Engine:    ocr.EngineName,
		Version:   ocr.EngineVersion,
		WordBoxes: words,
	})
}
