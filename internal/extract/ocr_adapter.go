package extract

import (
	"context"

	"github.com/homeward-labs/docintel/internal/ocr"
)

// OCRAdapter bridges the ocr package to the cascade's fallback contract.
type OCRAdapter struct {
	a *ocr.Adapter
}

func NewOCRAdapter(a *ocr.Adapter) *OCRAdapter {
	return &OCRAdapter{a: a}
}

func (o *OCRAdapter) Available() bool {
	return o.a.Available()
}

func (o *OCRAdapter) ExtractPDF(ctx context.Context, data []byte) (OCRResult, error) {
	r, err := o.a.ExtractPDF(ctx, data)
	return toOCRResult(r), err
}

func (o *OCRAdapter) ExtractImage(ctx context.Context, data []byte) (OCRResult, error) {
	r, err := o.a.ExtractImage(ctx, data)
	return toOCRResult(r), err
}

func toOCRResult(r ocr.Result) OCRResult {
	return OCRResult{
		Text:       r.Text,
		Method:     r.Method,
		Pages:      r.Pages,
		Confidence: r.Confidence,
		Language:   r.Language,
	}
}
