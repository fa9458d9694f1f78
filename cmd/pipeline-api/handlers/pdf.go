package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tgn-press/pipeline/internal/config"
	"github.com/tgn-press/pipeline/internal/observability"
	"github.com/tgn-press/pipeline/internal/pdf"
)

// PDFHandler analyzes remote PDFs and renders their pages to storage.
type PDFHandler struct {
	logger  *observability.Logger
	fetcher Fetcher
	cfg     config.PDFConfig
}

// NewPDFHandler creates a PDF handler.
func NewPDFHandler(logger *observability.Logger, fetcher Fetcher, cfg config.PDFConfig) *PDFHandler {
	return &PDFHandler{logger: logger, fetcher: fetcher, cfg: cfg}
}

// PDFAnalyzeRequestDTO represents the API request for PDF analysis.
type PDFAnalyzeRequestDTO struct {
	PDFURL string `json:"pdf_url"`
}

// PDFAnalyzeResponseDTO represents the API response for PDF analysis.
type PDFAnalyzeResponseDTO struct {
	PageCount int `json:"page_count"`
}

// UploadTargetDTO pairs a storage key with its presigned upload URL.
type UploadTargetDTO struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// PDFProcessRequestDTO represents the API request for page rendering.
type PDFProcessRequestDTO struct {
	PDFURL      string            `json:"pdf_url"`
	Uploads     []UploadTargetDTO `json:"uploads"`
	StartPage   int               `json:"start_page,omitempty"`
	EndPage     int               `json:"end_page,omitempty"`
	TargetWidth int               `json:"target_width,omitempty"`
	JPEGQuality int               `json:"jpeg_quality,omitempty"`
	RenderDPI   int               `json:"render_dpi,omitempty"`
}

// PDFProcessResultDTO describes one rendered and uploaded page.
type PDFProcessResultDTO struct {
	StorageKey string `json:"storage_key"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Page       int    `json:"page"`
}

// PDFProcessResponseDTO represents the API response for page rendering.
type PDFProcessResponseDTO struct {
	Results []PDFProcessResultDTO `json:"results"`
}

// Analyze handles POST /pdf/analyze.
func (h *PDFHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req PDFAnalyzeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PDFURL == "" {
		writeError(w, http.StatusBadRequest, "pdf_url is required", "")
		return
	}

	doc, ok := h.openDocument(w, r, req.PDFURL)
	if !ok {
		return
	}
	defer doc.Close()

	writeJSON(w, http.StatusOK, PDFAnalyzeResponseDTO{PageCount: doc.PageCount()})
}

// Process handles POST /pdf/process.
func (h *PDFHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PDFProcessRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PDFURL == "" {
		writeError(w, http.StatusBadRequest, "pdf_url is required", "")
		return
	}
	if len(req.Uploads) == 0 {
		writeError(w, http.StatusBadRequest, "uploads must be a non-empty array", "")
		return
	}

	doc, ok := h.openDocument(w, r, req.PDFURL)
	if !ok {
		return
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	if pageCount == 0 {
		writeJSON(w, http.StatusOK, PDFProcessResponseDTO{Results: []PDFProcessResultDTO{}})
		return
	}

	pages, err := pdf.PageRange(pageCount, req.StartPage, req.EndPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page range", err.Error())
		return
	}
	if len(req.Uploads) < len(pages) {
		writeError(w, http.StatusBadRequest, "uploads must contain at least one URL/key pair per processed page", "")
		return
	}

	quality := clampInt(orDefault(req.JPEGQuality, h.cfg.JPEGQuality), 1, 100)
	dpi := orDefault(req.RenderDPI, h.cfg.RenderDPI)
	if dpi < 72 {
		dpi = 72
	}
	maxWidth := orDefault(req.TargetWidth, h.cfg.TargetWidth)
	if maxWidth < 1 {
		maxWidth = 1
	}

	results := make([]PDFProcessResultDTO, 0, len(pages))
	for idx, pageNumber := range pages {
		rendered, err := doc.RenderPage(pageNumber, dpi, maxWidth, quality)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render page %d", pageNumber), err.Error())
			return
		}

		upload := req.Uploads[idx]
		if err := h.fetcher.Upload(ctx, upload.URL, rendered.JPEG, "image/jpeg"); err != nil {
			writeError(w, http.StatusBadGateway, fmt.Sprintf("upload failed for page %d", pageNumber), err.Error())
			return
		}

		results = append(results, PDFProcessResultDTO{
			StorageKey: upload.Key,
			Width:      rendered.Width,
			Height:     rendered.Height,
			Page:       pageNumber,
		})
	}

	writeJSON(w, http.StatusOK, PDFProcessResponseDTO{Results: results})
}

// openDocument downloads and parses the PDF, writing the error response
// itself on failure. Download failures map to 502, parse failures to 400.
func (h *PDFHandler) openDocument(w http.ResponseWriter, r *http.Request, url string) (*pdf.Document, bool) {
	data, err := h.fetcher.Download(r.Context(), url)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to download PDF", err.Error())
		return nil, false
	}

	doc, err := pdf.Open(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not parse PDF", err.Error())
		return nil, false
	}
	return doc, true
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
