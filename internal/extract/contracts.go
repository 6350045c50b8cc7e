package extract

import (
	"context"
	"time"
)

// Policy constants for the cascade. The 50/10 character thresholds come from
// the upstream processing service as-is; they are exposed through config so
// they can be calibrated against real documents.
const (
	DefaultMinContentLen = 50
	DefaultOCREmptyLen   = 10

	// EmptyTextConfidence is reported when even OCR produced effectively no
	// text. The request still succeeds; downstream treats "empty but
	// present" distinctly from a hard failure.
	EmptyTextConfidence = 0.3
)

// Static per-method confidences. These describe the method tier, not a
// measured per-call accuracy.
const (
	ConfidencePDFText   = 0.95
	ConfidencePdftotext = 0.90
)

// Request is one immutable extraction input: raw bytes plus the declared
// media type and original filename from the upload boundary.
type Request struct {
	Data      []byte
	MediaType string
	Filename  string
}

// Result is the outcome of exactly one cascade run.
type Result struct {
	Text       string
	Method     string
	Confidence float32
	PageCount  int
	Language   string
	Elapsed    time.Duration
}

// WordCount counts whitespace-separated tokens in the extracted text.
func (r Result) WordCount() int {
	n := 0
	inWord := false
	for _, c := range r.Text {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' {
			inWord = false
		} else if !inWord {
			inWord = true
			n++
		}
	}
	return n
}

// Descriptor describes one registered backend: its rank in the cascade, its
// availability (probed once at startup) and the static confidence attached
// to text it produces.
type Descriptor struct {
	Name       string
	Method     string
	Rank       int
	Available  bool
	Confidence float32
}

// Backend is one concrete direct text-extraction strategy. TryExtract must
// be idempotent and side-effect-free; a failing backend is skipped, never
// retried.
type Backend interface {
	Descriptor() Descriptor
	TryExtract(ctx context.Context, data []byte) (text string, pages int, err error)
}

// OCRResult is what the OCR fallback hands back to the cascade.
type OCRResult struct {
	Text       string
	Method     string
	Pages      int
	Confidence float32
	Language   string
}

// OCRFallback is the terminal strategy behind the direct backends.
type OCRFallback interface {
	// Available reports whether at least one OCR engine can run.
	Available() bool
	ExtractPDF(ctx context.Context, data []byte) (OCRResult, error)
	ExtractImage(ctx context.Context, data []byte) (OCRResult, error)
}
