// Package export turns batch processing results into an XLSX workbook for
// review by loan officers.
package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/homeward-labs/docintel/internal/analyze"
	"github.com/homeward-labs/docintel/internal/fields"
)

// Row is one processed document in the batch report. Err is set when the
// document failed and the remaining fields are empty.
type Row struct {
	Filename string
	Document analyze.Document
	Err      error
}

// Writer produces XLSX bytes from a slice of batch rows.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

var headers = []string{
	"Filename",
	"Status",
	"Document Type",
	"Extraction Method",
	"Pages",
	"Extraction Confidence",
	"Analysis Confidence",
	"Full Name",
	"Date of Birth",
	"Gross Income",
	"Employer",
	"Account Balance",
	"Dates Found",
	"Suggestions",
}

// WriteReport renders the rows into a single-sheet workbook.
func (w *Writer) WriteReport(rows []Row) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 && index != activeIndex {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range rows {
		rowIdx := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Filename)
		if r.Err != nil {
			write(2, "error")
			write(14, truncate(r.Err.Error(), 200))
			continue
		}

		a := r.Document.Analysis
		ext := r.Document.Extraction
		write(2, "ok")
		write(3, string(a.DocumentType))
		write(4, ext.Method)
		write(5, ext.PageCount)
		write(6, fmt.Sprintf("%.2f", ext.Confidence))
		write(7, fmt.Sprintf("%.2f", a.Confidence))
		write(8, scalarOrEmpty(a.Fields, fields.FieldFullName))
		write(9, scalarOrEmpty(a.Fields, fields.FieldDateOfBirth))
		write(10, scalarOrEmpty(a.Fields, fields.FieldGrossIncome))
		write(11, scalarOrEmpty(a.Fields, fields.FieldEmployer))
		write(12, scalarOrEmpty(a.Fields, fields.FieldAccountBalance))
		dates, _ := a.Fields.List(fields.FieldDatesFound)
		write(13, strings.Join(dates, "; "))
		write(14, truncate(strings.Join(a.Suggestions, " | "), 250))
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "B", 8)
	_ = f.SetColWidth(sheet, "C", "D", 22)
	_ = f.SetColWidth(sheet, "E", "G", 12)
	_ = f.SetColWidth(sheet, "H", "L", 20)
	_ = f.SetColWidth(sheet, "M", "M", 30)
	_ = f.SetColWidth(sheet, "N", "N", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("report.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func scalarOrEmpty(fs *fields.FieldSet, key string) string {
	v, _ := fs.Scalar(key)
	return v
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
