// Package analyze coordinates the document-intelligence pipeline: text
// extraction via the cascade, then classification, field extraction and
// confidence scoring over the result.
package analyze

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/homeward-labs/docintel/constants"
	"github.com/homeward-labs/docintel/internal/classify"
	"github.com/homeward-labs/docintel/internal/extract"
	"github.com/homeward-labs/docintel/internal/fields"
)

// minDetectLen guards the language detector against noise: very short
// extractions keep the OCR language tag instead.
const minDetectLen = 40

// Analysis is the structured outcome for one document.
type Analysis struct {
	DocumentType constants.DocumentType `json:"document_type"`
	Fields       *fields.FieldSet       `json:"fields"`
	Confidence   float32                `json:"confidence"`
	Suggestions  []string               `json:"suggestions"`
}

// Document bundles the extraction result with its analysis.
type Document struct {
	Extraction extract.Result
	Analysis   Analysis
}

// Processor runs the two stages. It is safe for concurrent use; every
// request is a pure function of its own input plus the static rule tables.
type Processor struct {
	logger   *slog.Logger
	cascade  *extract.Cascade
	detector lingua.LanguageDetector
}

func NewProcessor(cascade *extract.Cascade, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Spanish, lingua.French, lingua.German, lingua.Portuguese).
		Build()
	return &Processor{logger: logger, cascade: cascade, detector: detector}
}

// ExtractText runs the cascade for one request and tags the result with the
// detected language.
func (p *Processor) ExtractText(ctx context.Context, req extract.Request) (extract.Result, error) {
	res, err := p.cascade.Extract(ctx, req)
	if err != nil {
		p.logger.Error("extract failed", "filename", req.Filename, "error", err)
		return extract.Result{}, err
	}
	if tag := p.detectLanguage(res.Text); tag != "" {
		res.Language = tag
	}
	p.logger.Info("extract ok",
		"filename", req.Filename,
		"method", res.Method,
		"pages", res.PageCount,
		"confidence", res.Confidence,
		"language", res.Language,
		"words", res.WordCount(),
	)
	return res, nil
}

// AnalyzeText classifies pre-extracted text and pulls structured fields out
// of it. It never fails: unrecognizable input classifies as
// general_document with whatever common fields are present.
func (p *Processor) AnalyzeText(text, filename string) Analysis {
	docType := classify.Classify(text, filename)
	fs := fields.Extract(text, docType)

	return Analysis{
		DocumentType: docType,
		Fields:       fs,
		Confidence:   fields.Score(fs, docType),
		Suggestions:  fields.Advise(fs, docType),
	}
}

// ProcessDocument runs extraction then analysis for one upload.
func (p *Processor) ProcessDocument(ctx context.Context, req extract.Request) (Document, error) {
	res, err := p.ExtractText(ctx, req)
	if err != nil {
		return Document{}, err
	}

	analysis := p.AnalyzeText(res.Text, req.Filename)
	p.logger.Info("analyze ok",
		"filename", req.Filename,
		"document_type", analysis.DocumentType,
		"fields", analysis.Fields.Len(),
		"confidence", analysis.Confidence,
	)
	return Document{Extraction: res, Analysis: analysis}, nil
}

func (p *Processor) detectLanguage(text string) string {
	if len(strings.TrimSpace(text)) < minDetectLen {
		return ""
	}
	lang, ok := p.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_3().String())
}
