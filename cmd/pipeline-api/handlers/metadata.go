package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
)

// MetadataHandler resolves publication metadata from OCR word boxes.
type MetadataHandler struct {
	logger   *observability.Logger
	resolver *metadata.Resolver
}

// NewMetadataHandler creates a metadata handler.
func NewMetadataHandler(logger *observability.Logger, resolver *metadata.Resolver) *MetadataHandler {
	return &MetadataHandler{logger: logger, resolver: resolver}
}

// Resolve handles POST /publication/metadata.
func (h *MetadataHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req metadata.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result := h.resolver.Resolve(r.Context(), req)

	writeJSON(w, http.StatusOK, result)
}
