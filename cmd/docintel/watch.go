package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/homeward-labs/docintel/constants"
	"github.com/homeward-labs/docintel/internal/analyze"
	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/extract"
	"github.com/homeward-labs/docintel/internal/ingest"
	"github.com/homeward-labs/docintel/internal/ocr"
)

var watchInitialScan bool

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and process documents as they appear",
	Long: `Watches the directory (recursively) and runs the pipeline on every
supported document that is created or modified, printing one JSON line per
result. Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	caps := extract.DetectCapabilities(
		cfg.Extract.Pdftotext, cfg.OCR.Pdftoppm, cfg.OCR.Tesseract, cfg.OCR.Surya, logger)
	runner := ocr.NewExecRunner(logger)
	adapter := ocr.NewAdapter(ocr.Config{
		Pdftoppm:    cfg.OCR.Pdftoppm,
		Language:    cfg.OCR.TesseractLang,
		RasterDPI:   cfg.OCR.RasterDPI,
		MaxPages:    cfg.OCR.MaxPages,
		PageWorkers: cfg.OCR.PageWorkers,
	}, runner, []ocr.Engine{
		ocr.NewSuryaEngine(cfg.OCR.Surya, caps.Surya, runner),
		ocr.NewTesseractEngine(cfg.OCR.Tesseract, cfg.OCR.TesseractLang, caps.Tesseract, runner),
	}, logger)
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths, errs, err := ingest.Watch(ctx, ingest.WatchConfig{
		Roots:       []string{args[0]},
		InitialScan: watchInitialScan,
		Debounce:    500 * time.Millisecond,
	}, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if ok && err != nil {
				logger.Error("watch error", "error", err)
			}
		case p, ok := <-paths:
			if !ok {
				return nil
			}
			data, err := os.ReadFile(p)
			if err != nil {
				logger.Error("read failed", "path", p, "error", err)
				continue
			}
			doc, err := processor.ProcessDocument(ctx, extract.Request{
				Data:      data,
				MediaType: constants.ExtToMediaType(filepath.Ext(p)),
				Filename:  filepath.Base(p),
			})
			if err != nil {
				logger.Error("processing failed", "path", p, "error", err)
				continue
			}
			line := map[string]any{
				"filename":      filepath.Base(p),
				"document_type": doc.Analysis.DocumentType,
				"method":        doc.Extraction.Method,
				"confidence":    doc.Analysis.Confidence,
				"fields":        doc.Analysis.Fields,
			}
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
		}
	}
}

func init() {
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false,
		"Process documents already present before watching")
	rootCmd.AddCommand(watchCmd)
}
