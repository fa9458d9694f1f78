// Package main provides the pipeline API server entrypoint.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tgn-press/pipeline/cmd/pipeline-api/handlers"
	"github.com/tgn-press/pipeline/cmd/pipeline-api/middleware"
	"github.com/tgn-press/pipeline/internal/config"
	"github.com/tgn-press/pipeline/internal/fetch"
	"github.com/tgn-press/pipeline/internal/llm"
	"github.com/tgn-press/pipeline/internal/metadata"
	"github.com/tgn-press/pipeline/internal/observability"
	"github.com/tgn-press/pipeline/internal/ocr"
)

// NewRouter creates the API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))
	r.Use(chimiddleware.RequestSize(cfg.Server.MaxBodyBytes))

	// Health endpoints stay unauthenticated.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"service":"tgn-pipeline","status":"ok"}`))
	})

	fetcher := fetch.NewClient(cfg.Fetch.RequestTimeout, logger)
	engine := ocr.NewEngine(logger)

	var arbiter metadata.Arbiter
	llmClient := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		BaseURL: cfg.LLM.BaseURL,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	if llmClient.Enabled() {
		arbiter = llmClient
	}
	resolver := metadata.NewResolver(arbiter, logger)

	metadataHandler := handlers.NewMetadataHandler(logger, resolver)
	ocrHandler := handlers.NewOCRHandler(logger, fetcher, engine)
	pdfHandler := handlers.NewPDFHandler(logger, fetcher, cfg.PDF)
	segmentHandler := handlers.NewSegmentHandler(logger, fetcher)
	leadHandler := handlers.NewLeadHandler(logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.Auth.APIKey))

		r.Post("/pdf/analyze", pdfHandler.Analyze)
		r.Post("/pdf/process", pdfHandler.Process)
		r.Post("/ocr/page", ocrHandler.Page)
		r.Post("/publication/metadata", metadataHandler.Resolve)
		r.Post("/segment/page", segmentHandler.Page)
		r.Post("/classify/lead", leadHandler.Classify)
		r.Post("/enrich/lead", leadHandler.Enrich)
	})

	return r
}
