package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Static confidences for OCR-produced text. These describe the method tier,
// not per-call accuracy (per-token confidences are only used to filter
// low-quality spans before assembly).
const (
	PDFOCRConfidence    = 0.75
	SuryaConfidence     = 0.85
	TesseractConfidence = 0.80

	// MinSpanConfidence drops recognized tokens below this per-token score
	// before results are compared across engines.
	MinSpanConfidence = 0.5
)

type Config struct {
	Pdftoppm string // binary name or absolute path; if empty -> "pdftoppm"

	Language    string // reported language tag, default "eng"
	RasterDPI   int    // rasterization DPI for scanned PDFs, default 300 (2x the 150 poppler base)
	MaxPages    int    // 0 = no limit
	PageWorkers int    // concurrent pages during PDF OCR, default 4
}

type Result struct {
	Text       string
	Method     string
	Pages      int
	Confidence float32
	Language   string
}

// Adapter routes rasterizable inputs through the available OCR engines.
type Adapter struct {
	cfg     Config
	runner  Runner
	engines []Engine
	logger  *slog.Logger
}

func NewAdapter(cfg Config, runner Runner, engines []Engine, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = NewExecRunner(logger)
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.RasterDPI <= 0 {
		cfg.RasterDPI = 300
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = 4
	}
	return &Adapter{cfg: cfg, runner: runner, engines: engines, logger: logger}
}

// Available reports whether at least one OCR engine can run.
func (a *Adapter) Available() bool {
	for _, e := range a.engines {
		if e.Available() {
			return true
		}
	}
	return false
}

// recognizeFile runs every available engine against one raster image and
// keeps the result with the most text. Longer output is the working proxy
// for "more was recognized"; self-reported confidence is only used to drop
// weak tokens beforehand.
func (a *Adapter) recognizeFile(ctx context.Context, imagePath string) (string, Engine, error) {
	var (
		bestText   string
		bestEngine Engine
		ran        bool
	)
	for _, e := range a.engines {
		if !e.Available() {
			continue
		}
		spans, err := e.Recognize(ctx, imagePath)
		if err != nil {
			if ctx.Err() != nil {
				return "", nil, ctx.Err()
			}
			a.logger.Warn("ocr engine failed", "engine", e.Name(), "error", err)
			continue
		}
		text := assembleSpans(spans)
		if !ran || len(text) > len(bestText) {
			bestText = text
			bestEngine = e
		}
		ran = true
	}
	if !ran {
		return "", nil, fmt.Errorf("no OCR engine available or all engines failed")
	}
	return bestText, bestEngine, nil
}

// assembleSpans filters low-confidence tokens and joins the rest.
func assembleSpans(spans []Span) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Confidence < MinSpanConfidence {
			continue
		}
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, " ")
}
