package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/homeward-labs/docintel/constants"
	"github.com/homeward-labs/docintel/internal/analyze"
	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/export"
	"github.com/homeward-labs/docintel/internal/extract"
	"github.com/homeward-labs/docintel/internal/ocr"
)

var reportPath string

var processCmd = &cobra.Command{
	Use:   "process <dir>",
	Short: "Process every supported document in a directory",
	Long: `Walks the directory, runs extraction and analysis for every PDF,
JPEG and PNG file found, and writes an XLSX report with one row per
document. Unsupported files are skipped; per-file failures are recorded
in the report instead of aborting the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	caps := extract.DetectCapabilities(
		cfg.Extract.Pdftotext, cfg.OCR.Pdftoppm, cfg.OCR.Tesseract, cfg.OCR.Surya, logger)
	runner := ocr.NewExecRunner(logger)
	engines := []ocr.Engine{
		ocr.NewSuryaEngine(cfg.OCR.Surya, caps.Surya, runner),
		ocr.NewTesseractEngine(cfg.OCR.Tesseract, cfg.OCR.TesseractLang, caps.Tesseract, runner),
	}
	adapter := ocr.NewAdapter(ocr.Config{
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Language:    cfg.OCR.TesseractLang,
		RasterDPI:   cfg.OCR.RasterDPI,
		MaxPages:    cfg.OCR.MaxPages,
		PageWorkers: cfg.OCR.PageWorkers,
	}, runner, engines, logger)
	cascade := extract.NewCascade(
		extract.Config{
			MinContentLen: cfg.Extract.MinContentLen,
			OCREmptyLen:   cfg.Extract.OCREmptyLen,
		},
		extract.DefaultBackends(cfg.Extract.Pdftotext, caps, runner),
		extract.NewOCRAdapter(adapter),
		logger,
	)
	processor := analyze.NewProcessor(cascade, logger)

	dir := args[0]
	paths, err := collectDocuments(dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found in %s", dir)
	}

	rows := make([]export.Row, 0, len(paths))
	for _, p := range paths {
		row := export.Row{Filename: filepath.Base(p)}
		data, err := os.ReadFile(p)
		if err != nil {
			row.Err = err
			rows = append(rows, row)
			continue
		}
		doc, err := processor.ProcessDocument(cmd.Context(), extract.Request{
			Data:      data,
			MediaType: constants.ExtToMediaType(filepath.Ext(p)),
			Filename:  filepath.Base(p),
		})
		if err != nil {
			row.Err = err
		} else {
			row.Document = doc
		}
		rows = append(rows, row)
		fmt.Printf("processed %s\n", filepath.Base(p))
	}

	report, err := export.NewWriter(logger).WriteReport(rows)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.WriteFile(reportPath, report, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", reportPath, err)
	}

	fmt.Printf("report written to %s (%d documents)\n", reportPath, len(rows))
	return nil
}

// collectDocuments lists supported files directly under dir, sorted by name.
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.ExtToMediaType(filepath.Ext(e.Name())) == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func init() {
	processCmd.Flags().StringVarP(&reportPath, "output", "o", "report.xlsx",
		"Path of the XLSX report to write")
	rootCmd.AddCommand(processCmd)
}
