package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFTextBackend extracts embedded text in-process. It is the fastest tier
// and works for any PDF with a real text layer.
type PDFTextBackend struct{}

func NewPDFTextBackend() *PDFTextBackend {
	return &PDFTextBackend{}
}

func (b *PDFTextBackend) Descriptor() Descriptor {
	return Descriptor{
		Name:       "pdf-text",
		Method:     "pdf-text (direct)",
		Rank:       1,
		Available:  true, // in-process, no external tool
		Confidence: ConfidencePDFText,
	}
}

func (b *PDFTextBackend) TryExtract(ctx context.Context, data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// a single unreadable page is not fatal for the backend
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String()), total, nil
}
