// Package handlers provides HTTP handlers for the pipeline API.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

// Fetcher moves bytes to and from external URLs.
type Fetcher interface {
	Download(ctx context.Context, url string) ([]byte, error)
	Upload(ctx context.Context, url string, data []byte, contentType string) error
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]string{
		"error":   message,
		"message": message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	json.NewEncoder(w).Encode(resp)
}
