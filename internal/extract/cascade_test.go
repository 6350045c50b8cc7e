package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/homeward-labs/docintel/internal/common"
)

type fakeBackend struct {
	desc  Descriptor
	text  string
	pages int
	err   error
	calls int
}

func (f *fakeBackend) Descriptor() Descriptor { return f.desc }

func (f *fakeBackend) TryExtract(ctx context.Context, data []byte) (string, int, error) {
	f.calls++
	return f.text, f.pages, f.err
}

type fakeOCR struct {
	available bool
	result    OCRResult
	err       error
	pdfCalls  int
	imgCalls  int
}

func (f *fakeOCR) Available() bool { return f.available }

func (f *fakeOCR) ExtractPDF(ctx context.Context, data []byte) (OCRResult, error) {
	f.pdfCalls++
	return f.result, f.err
}

func (f *fakeOCR) ExtractImage(ctx context.Context, data []byte) (OCRResult, error) {
	f.imgCalls++
	return f.result, f.err
}

func pdfRequest() Request {
	return Request{Data: []byte("%PDF-1.4"), MediaType: "application/pdf", Filename: "doc.pdf"}
}

func longText() string {
	return strings.Repeat("mortgage statement line\n", 10)
}

func TestExtractAcceptsFirstSufficientBackend(t *testing.T) {
	first := &fakeBackend{
		desc: Descriptor{Name: "pdf-text", Method: "pdf-text direct", Rank: 1, Available: true, Confidence: ConfidencePDFText},
		text: longText(), pages: 2,
	}
	second := &fakeBackend{
		desc: Descriptor{Name: "pdftotext", Method: "pdftotext", Rank: 2, Available: true, Confidence: ConfidencePdftotext},
		text: longText(), pages: 2,
	}
	fallback := &fakeOCR{available: true}

	c := NewCascade(Config{}, []Backend{second, first}, fallback, nil)
	res, err := c.Extract(context.Background(), pdfRequest())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Method != "pdf-text direct" {
		t.Errorf("method = %q, want pdf-text direct (rank order broken)", res.Method)
	}
	if res.Confidence != ConfidencePDFText {
		t.Errorf("confidence = %v, want %v", res.Confidence, ConfidencePDFText)
	}
	if second.calls != 0 {
		t.Errorf("second backend called %d times, want 0", second.calls)
	}
	if fallback.pdfCalls != 0 {
		t.Errorf("OCR called %d times, want 0", fallback.pdfCalls)
	}
	if res.PageCount != 2 {
		t.Errorf("pages = %d, want 2", res.PageCount)
	}
}

func TestExtractFallsBackToOCRWhenAllBackendsShort(t *testing.T) {
	short := &fakeBackend{
		desc: Descriptor{Name: "pdf-text", Method: "pdf-text direct", Rank: 1, Available: true},
		text: "scan artifact", pages: 3,
	}
	fallback := &fakeOCR{
		available: true,
		result: OCRResult{
			Text: longText(), Method: "ocr (rasterized pages)", Pages: 3, Confidence: 0.75, Language: "eng",
		},
	}

	c := NewCascade(Config{}, []Backend{short}, fallback, nil)
	res, err := c.Extract(context.Background(), pdfRequest())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fallback.pdfCalls != 1 {
		t.Fatalf("OCR called %d times, want exactly 1", fallback.pdfCalls)
	}
	if res.Method != "ocr (rasterized pages)" {
		t.Errorf("method = %q", res.Method)
	}
	if res.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", res.Confidence)
	}
	if res.Language != "eng" {
		t.Errorf("language = %q, want eng", res.Language)
	}
}

func TestExtractEmptyOCRIsAnnotatedNotError(t *testing.T) {
	short := &fakeBackend{
		desc: Descriptor{Name: "pdf-text", Method: "pdf-text direct", Rank: 1, Available: true},
		text: "",
	}
	fallback := &fakeOCR{
		available: true,
		result:    OCRResult{Text: "  \n ", Method: "ocr (rasterized pages)", Pages: 1, Confidence: 0.75},
	}

	c := NewCascade(Config{}, []Backend{short}, fallback, nil)
	res, err := c.Extract(context.Background(), pdfRequest())
	if err != nil {
		t.Fatalf("empty OCR output must not be an error, got %v", err)
	}
	if res.Method != "ocr (rasterized pages) (no text found)" {
		t.Errorf("method = %q, want annotated", res.Method)
	}
	if res.Confidence != EmptyTextConfidence {
		t.Errorf("confidence = %v, want %v", res.Confidence, EmptyTextConfidence)
	}
}

func TestExtractRejectsUnsupportedMediaTypeBeforeBackends(t *testing.T) {
	b := &fakeBackend{
		desc: Descriptor{Name: "pdf-text", Rank: 1, Available: true},
		text: longText(),
	}
	c := NewCascade(Config{}, []Backend{b}, &fakeOCR{available: true}, nil)

	_, err := c.Extract(context.Background(), Request{
		Data: []byte("GIF89a"), MediaType: "image/gif", Filename: "anim.gif",
	})
	if !errors.Is(err, common.ErrUnsupportedMediaType) {
		t.Fatalf("err = %v, want ErrUnsupportedMediaType", err)
	}
	if b.calls != 0 {
		t.Errorf("backend called %d times for rejected media type, want 0", b.calls)
	}
}

func TestExtractSkipsUnavailableAndFailingBackends(t *testing.T) {
	unavailable := &fakeBackend{
		desc: Descriptor{Name: "pdf-text", Rank: 1, Available: false},
		text: longText(),
	}
	failing := &fakeBackend{
		desc: Descriptor{Name: "pdftotext", Method: "pdftotext", Rank: 2, Available: true},
		err:  errors.New("exit status 1"),
	}
	working := &fakeBackend{
		desc: Descriptor{Name: "spare", Method: "spare", Rank: 3, Available: true, Confidence: 0.5},
		text: longText(), pages: 1,
	}

	c := NewCascade(Config{}, []Backend{unavailable, failing, working}, &fakeOCR{}, nil)
	res, err := c.Extract(context.Background(), pdfRequest())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if unavailable.calls != 0 {
		t.Errorf("unavailable backend was called")
	}
	if failing.calls != 1 {
		t.Errorf("failing backend calls = %d, want 1", failing.calls)
	}
	if res.Method != "spare" {
		t.Errorf("method = %q, want spare", res.Method)
	}
}

func TestExtractNoBackendsNoOCR(t *testing.T) {
	c := NewCascade(Config{}, nil, &fakeOCR{available: false}, nil)
	_, err := c.Extract(context.Background(), pdfRequest())
	if !errors.Is(err, common.ErrBackendUnavailable) {
		t.Fatalf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestExtractImageRoutesToOCR(t *testing.T) {
	b := &fakeBackend{desc: Descriptor{Name: "pdf-text", Rank: 1, Available: true}, text: longText()}
	fallback := &fakeOCR{
		available: true,
		result:    OCRResult{Text: longText(), Method: "image-ocr (tesseract)", Pages: 1, Confidence: 0.80},
	}
	c := NewCascade(Config{}, []Backend{b}, fallback, nil)

	res, err := c.Extract(context.Background(), Request{
		Data: []byte{0x89, 'P', 'N', 'G'}, MediaType: "image/png", Filename: "id.png",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if b.calls != 0 {
		t.Errorf("PDF backend called for image input")
	}
	if fallback.imgCalls != 1 {
		t.Errorf("image OCR calls = %d, want 1", fallback.imgCalls)
	}
	if res.Method != "image-ocr (tesseract)" {
		t.Errorf("method = %q", res.Method)
	}
}

func TestExtractBoundaryExactThresholdGoesToOCR(t *testing.T) {
	// Exactly MinContentLen trimmed characters is not enough; the comparison
	// is strictly greater-than.
	exact := &fakeBackend{
		desc: Descriptor{Name: "pdf-text", Method: "pdf-text direct", Rank: 1, Available: true},
		text: strings.Repeat("a", DefaultMinContentLen),
	}
	fallback := &fakeOCR{
		available: true,
		result:    OCRResult{Text: longText(), Method: "ocr (rasterized pages)", Confidence: 0.75},
	}
	c := NewCascade(Config{}, []Backend{exact}, fallback, nil)

	res, err := c.Extract(context.Background(), pdfRequest())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fallback.pdfCalls != 1 {
		t.Fatalf("OCR calls = %d, want 1", fallback.pdfCalls)
	}
	if res.Method != "ocr (rasterized pages)" {
		t.Errorf("method = %q", res.Method)
	}
}

func TestWordCount(t *testing.T) {
	r := Result{Text: "  one two\tthree\nfour  "}
	if got := r.WordCount(); got != 4 {
		t.Errorf("WordCount = %d, want 4", got)
	}
	if got := (Result{}).WordCount(); got != 0 {
		t.Errorf("WordCount of empty = %d, want 0", got)
	}
}
