package extract

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PDFPageCount returns the number of pages in the PDF, or 1 when the
// document cannot be inspected (a single-page assumption is good enough for
// reporting purposes).
func PDFPageCount(data []byte) int {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil || count < 1 {
		return 1
	}
	return count
}

// ValidPDF reports whether pdfcpu can open the document at all. Used to
// distinguish a corrupt upload from a scanned PDF with no text layer.
func ValidPDF(data []byte) bool {
	_, err := api.PageCount(bytes.NewReader(data), nil)
	return err == nil
}
