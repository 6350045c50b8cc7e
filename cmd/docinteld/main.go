package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/homeward-labs/docintel/internal/analyze"
	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/extract"
	"github.com/homeward-labs/docintel/internal/llm"
	"github.com/homeward-labs/docintel/internal/llm/openai"
	"github.com/homeward-labs/docintel/internal/ocr"
	"github.com/homeward-labs/docintel/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var analyzer llm.NarrativeAnalyzer
	if cfg.LLM.APIKey != "" {
		analyzer = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Info("OPENAI_API_KEY not set, assess-document disabled")
	}

	srv := server.New(processor, analyzer, cfg.Server.MaxUploadSize, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr,
			"pdftotext", caps.Pdftotext,
			"tesseract", caps.Tesseract,
			"surya", caps.Surya,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
