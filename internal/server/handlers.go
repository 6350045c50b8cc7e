package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/homeward-labs/docintel/constants"
	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/extract"
	"github.com/homeward-labs/docintel/internal/llm"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.respondData(w, map[string]any{
		"service": "docintel",
		"endpoints": []string{
			"GET /health",
			"POST /extract-text",
			"POST /analyze-document",
			"POST /assess-document",
		},
	}, "Document intelligence service is running")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, map[string]any{
		"status":             "healthy",
		"narrative_analysis": s.analyzer != nil,
	}, "")
}

// extractResponse mirrors the extract-text payload downstream consumers rely
// on: the text itself plus how it was obtained.
type extractResponse struct {
	Filename         string  `json:"filename"`
	FileType         string  `json:"file_type"`
	ExtractedText    string  `json:"extracted_text"`
	ConfidenceScore  float32 `json:"confidence_score"`
	ProcessingMethod string  `json:"processing_method"`
	PageCount        int     `json:"page_count"`
	WordCount        int     `json:"word_count"`
	Language         string  `json:"language,omitempty"`
}

func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	res, err := s.processor.ExtractText(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, extractResponse{
		Filename:         req.Filename,
		FileType:         constants.NormalizeMediaType(req.MediaType),
		ExtractedText:    res.Text,
		ConfidenceScore:  res.Confidence,
		ProcessingMethod: res.Method,
		PageCount:        res.PageCount,
		WordCount:        res.WordCount(),
		Language:         res.Language,
	}, "Text extracted successfully")
}

type analyzeResponse struct {
	Filename        string          `json:"filename"`
	DocumentType    string          `json:"document_type"`
	ExtractedFields json.RawMessage `json:"extracted_fields"`
	ConfidenceScore float32         `json:"confidence_score"`
	RawText         string          `json:"raw_text"`
	Suggestions     []string        `json:"suggestions"`
}

func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	doc, err := s.processor.ProcessDocument(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	fieldsJSON, err := json.Marshal(doc.Analysis.Fields)
	if err != nil {
		s.respondError(w, r, common.NewAppError("INTERNAL", "failed to encode fields", err))
		return
	}

	s.respondData(w, analyzeResponse{
		Filename:        req.Filename,
		DocumentType:    string(doc.Analysis.DocumentType),
		ExtractedFields: fieldsJSON,
		ConfidenceScore: doc.Analysis.Confidence,
		RawText:         doc.Extraction.Text,
		Suggestions:     doc.Analysis.Suggestions,
	}, "Document analyzed successfully")
}

type assessResponse struct {
	Filename        string          `json:"filename"`
	DocumentType    string          `json:"document_type"`
	ExtractedFields json.RawMessage `json:"extracted_fields"`
	ConfidenceScore float32         `json:"confidence_score"`
	Suggestions     []string        `json:"suggestions"`
	Assessment      llm.Assessment  `json:"assessment"`
}

func (s *Server) handleAssessDocument(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.respondError(w, r, common.NewAppError("UNAVAILABLE",
			"narrative analysis is not configured", common.ErrBackendUnavailable))
		return
	}

	req, err := s.readUpload(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	doc, err := s.processor.ProcessDocument(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	fieldsJSON, err := json.Marshal(doc.Analysis.Fields)
	if err != nil {
		s.respondError(w, r, common.NewAppError("INTERNAL", "failed to encode fields", err))
		return
	}

	assessment, _, err := s.analyzer.AssessDocument(r.Context(), llm.AssessRequest{
		Text:         doc.Extraction.Text,
		Filename:     req.Filename,
		DocumentType: string(doc.Analysis.DocumentType),
		Fields:       doc.Analysis.Fields.ScalarMap(),
	})
	if err != nil {
		// Extraction and field analysis already succeeded; hand them back
		// alongside the remote failure so the caller does not lose them.
		s.respondErrorData(w, r, err, analyzeResponse{
			Filename:        req.Filename,
			DocumentType:    string(doc.Analysis.DocumentType),
			ExtractedFields: fieldsJSON,
			ConfidenceScore: doc.Analysis.Confidence,
			RawText:         doc.Extraction.Text,
			Suggestions:     doc.Analysis.Suggestions,
		})
		return
	}

	s.respondData(w, assessResponse{
		Filename:        req.Filename,
		DocumentType:    string(doc.Analysis.DocumentType),
		ExtractedFields: fieldsJSON,
		ConfidenceScore: doc.Analysis.Confidence,
		Suggestions:     doc.Analysis.Suggestions,
		Assessment:      assessment,
	}, "Document assessed successfully")
}

// readUpload pulls the "file" part out of a multipart form and checks the
// declared content type before any bytes reach a backend.
func (s *Server) readUpload(r *http.Request) (extract.Request, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, s.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		return extract.Request{}, common.NewAppError("INVALID_INPUT",
			"multipart form must carry a \"file\" part",
			fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = constants.ExtToMediaType(filepath.Ext(header.Filename))
	}
	if !constants.MediaTypeAllowed(mediaType) {
		return extract.Request{}, common.NewAppError("UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("unsupported file type %q; accepted: PDF, JPEG, PNG", mediaType),
			common.ErrUnsupportedMediaType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return extract.Request{}, common.NewAppError("INVALID_INPUT",
			"failed to read uploaded file",
			fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
	}
	if len(data) == 0 {
		return extract.Request{}, common.NewAppError("INVALID_INPUT",
			"uploaded file is empty", common.ErrInvalidInput)
	}

	return extract.Request{
		Data:      data,
		MediaType: mediaType,
		Filename:  header.Filename,
	}, nil
}
