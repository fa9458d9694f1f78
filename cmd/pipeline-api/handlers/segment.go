package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
	"github.com/tgn-press/pipeline/internal/segment"
)

// SegmentHandler estimates article regions on page images.
type SegmentHandler struct {
	logger  *observability.Logger
	fetcher Fetcher
}

// NewSegmentHandler creates a segmentation handler.
func NewSegmentHandler(logger *observability.Logger, fetcher Fetcher) *SegmentHandler {
	return &SegmentHandler{logger: logger, fetcher: fetcher}
}

// SegmentPageRequestDTO represents the API request for page segmentation.
type SegmentPageRequestDTO struct {
	PublicationID string             `json:"publication_id"`
	PageNumber    int                `json:"page_number"`
	ImageURL      string             `json:"image_url"`
	PageWidth     int                `json:"page_width"`
	PageHeight    int                `json:"page_height"`
	WordBoxes     []metadata.WordBox `json:"word_boxes"`
}

// SegmentPageResponseDTO represents the API response for page segmentation.
type SegmentPageResponseDTO struct {
	Segments []segment.Segment `json:"segments"`
}

// Page handles POST /segment/page. The image download validates the URL and
// keeps the error contract; segments come from the word-box footprint.
func (h *SegmentHandler) Page(w http.ResponseWriter, r *http.Request) {
	var req SegmentPageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "image_url is required", "")
		return
	}

	if _, err := h.fetcher.Download(r.Context(), req.ImageURL); err != nil {
		writeError(w, http.StatusBadGateway, "failed to download image", err.Error())
		return
	}

	segments := segment.FromWordFootprint(req.WordBoxes, req.PageWidth, req.PageHeight)
	if segments == nil {
		segments = []segment.Segment{}
	}

	writeJSON(w, http.StatusOK, SegmentPageResponseDTO{Segments: segments})
}
