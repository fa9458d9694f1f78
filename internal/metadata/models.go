// Package metadata resolves publication metadata (name and date) from
// per-page OCR word boxes. All entities are request-scoped value objects;
// nothing here persists state or holds identity across requests.
package metadata

// WordBox is an OCR-recognized token with its pixel bounding box. A valid
// box has exactly four components: x1, y1, x2, y2 in image coordinates.
// Boxes with a different arity or blank text are discarded before use.
type WordBox struct {
	Text string    `json:"text"`
	BBox []float64 `json:"bbox"`
}

// Page holds one scanned page's word boxes. Dimensions are optional; a zero
// PageHeight disables the masthead-band restriction during scoring.
type Page struct {
	PageNumber int       `json:"page_number"`
	PageWidth  int       `json:"page_width,omitempty"`
	PageHeight int       `json:"page_height,omitempty"`
	WordBoxes  []WordBox `json:"word_boxes"`
}

// Request is the resolver input. FallbackName is usually the uploaded file's
// raw name and is only used when no better candidate exists.
type Request struct {
	Pages        []Page `json:"pages"`
	FallbackName string `json:"fallback_name,omitempty"`
}

// Result is the resolver output. Nil fields serialize as explicit nulls so
// callers can distinguish "unknown" without sentinel strings.
type Result struct {
	PublicationName *string `json:"publication_name"`
	PublicationDate *string `json:"publication_date"`
}
