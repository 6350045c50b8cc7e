// Package server exposes the document-intelligence pipeline over a small
// HTTP JSON API: text extraction, structured analysis and the optional
// narrative assessment.
package server

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/homeward-labs/docintel/internal/analyze"
	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/llm"
)

type Server struct {
	logger        *slog.Logger
	processor     *analyze.Processor
	analyzer      llm.NarrativeAnalyzer // nil when no API key is configured
	maxUploadSize int64
}

func New(processor *analyze.Processor, analyzer llm.NarrativeAnalyzer, maxUploadSize int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = 32 << 20
	}
	return &Server{
		logger:        logger,
		processor:     processor,
		analyzer:      analyzer,
		maxUploadSize: maxUploadSize,
	}
}

// Routes builds the request mux with request-ID tagging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /extract-text", s.handleExtractText)
	mux.HandleFunc("POST /analyze-document", s.handleAnalyzeDocument)
	mux.HandleFunc("POST /assess-document", s.handleAssessDocument)
	return s.withRequestID(mux)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.New().String()
		ctx := common.WithRequestID(r.Context(), reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
