package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tgn-press/pipeline/internal/lead"
	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
)

// LeadHandler classifies and enriches article leads.
type LeadHandler struct {
	logger *observability.Logger
}

// NewLeadHandler creates a lead handler.
func NewLeadHandler(logger *observability.Logger) *LeadHandler {
	return &LeadHandler{logger: logger}
}

// ClassifyLeadRequestDTO represents the API request for lead classification.
type ClassifyLeadRequestDTO struct {
	PublicationID string    `json:"publication_id"`
	PageNumber    int       `json:"page_number"`
	SegmentBBox   []float64 `json:"segment_bbox"`
	Text          string    `json:"text"`
}

// ClassifyLeadResponseDTO represents the API response for lead
// classification.
type ClassifyLeadResponseDTO struct {
	IsLead     bool     `json:"is_lead"`
	Confidence float64  `json:"confidence"`
	Prediction string   `json:"prediction"`
	Reasons    []string `json:"reasons"`
}

// EnrichLeadRequestDTO represents the API request for lead enrichment.
type EnrichLeadRequestDTO struct {
	PublicationID string             `json:"publication_id"`
	PageNumber    int                `json:"page_number"`
	SegmentBBox   []float64          `json:"segment_bbox"`
	Text          string             `json:"text"`
	WordBoxes     []metadata.WordBox `json:"word_boxes"`
}

// EnrichLeadResponseDTO represents the API response for lead enrichment.
type EnrichLeadResponseDTO struct {
	ArticleHeader     string           `json:"article_header"`
	ArticleHeaderBBox []float64        `json:"article_header_bbox"`
	PersonNames       []string         `json:"person_names"`
	PersonNameBoxes   []lead.EntityBox `json:"person_name_boxes"`
	CompanyNames      []string         `json:"company_names"`
	CompanyNameBoxes  []lead.EntityBox `json:"company_name_boxes"`
}

// Classify handles POST /classify/lead.
func (h *LeadHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyLeadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result := lead.Classify(req.Text)

	writeJSON(w, http.StatusOK, ClassifyLeadResponseDTO{
		IsLead:     result.IsLead,
		Confidence: result.Confidence,
		Prediction: result.Prediction,
		Reasons:    result.Reasons,
	})
}

// Enrich handles POST /enrich/lead.
func (h *LeadHandler) Enrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichLeadRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result := lead.Enrich(req.Text, req.WordBoxes)

	resp := EnrichLeadResponseDTO{
		ArticleHeader:     result.ArticleHeader,
		ArticleHeaderBBox: result.ArticleHeaderBBox,
		PersonNames:       emptyIfNil(result.PersonNames),
		PersonNameBoxes:   emptyBoxesIfNil(result.PersonNameBoxes),
		CompanyNames:      emptyIfNil(result.CompanyNames),
		CompanyNameBoxes:  emptyBoxesIfNil(result.CompanyNameBoxes),
	}

	writeJSON(w, http.StatusOK, resp)
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func emptyBoxesIfNil(values []lead.EntityBox) []lead.EntityBox {
	if values == nil {
		return []lead.EntityBox{}
	}
	return values
}
