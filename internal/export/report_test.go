package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/homeward-labs/docintel/constants"
	"github.com/homeward-labs/docintel/internal/analyze"
	"github.com/homeward-labs/docintel/internal/extract"
	"github.com/homeward-labs/docintel/internal/fields"
)

func sampleDocument() analyze.Document {
	fs := fields.NewFieldSet()
	fs.SetScalar(fields.FieldGrossIncome, "5,000.00")
	fs.SetScalar(fields.FieldEmployer, "Acme Pty Ltd")
	return analyze.Document{
		Extraction: extract.Result{
			Text: "Gross: $5,000.00", Method: "pdf-text (direct)",
			Confidence: 0.95, PageCount: 2,
		},
		Analysis: analyze.Analysis{
			DocumentType: constants.IncomeDocument,
			Fields:       fs,
			Confidence:   0.9,
			Suggestions:  []string{"Document processed successfully. Review extracted information for accuracy."},
		},
	}
}

func TestWriteReport(t *testing.T) {
	rows := []Row{
		{Filename: "payslip.pdf", Document: sampleDocument()},
		{Filename: "broken.pdf", Err: errors.New("no extraction backend is available on this host")},
	}

	out, err := NewWriter(nil).WriteReport(rows)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Documents", "A1"); got != "Filename" {
		t.Errorf("A1 = %q, want Filename", got)
	}
	if got, _ := f.GetCellValue("Documents", "A2"); got != "payslip.pdf" {
		t.Errorf("A2 = %q", got)
	}
	if got, _ := f.GetCellValue("Documents", "C2"); got != "income_document" {
		t.Errorf("C2 = %q", got)
	}
	if got, _ := f.GetCellValue("Documents", "J2"); got != "5,000.00" {
		t.Errorf("J2 = %q", got)
	}
	if got, _ := f.GetCellValue("Documents", "B3"); got != "error" {
		t.Errorf("B3 = %q, want error", got)
	}
	if got, _ := f.GetCellValue("Documents", "N3"); got == "" {
		t.Error("N3 empty, want failure message")
	}
}
