package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/homeward-labs/docintel/constants"
	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/ocr"
)

// Config holds cascade policy.
type Config struct {
	MinContentLen int // direct backend acceptance threshold
	OCREmptyLen   int // below this, OCR output counts as "no text found"
}

// Cascade drives the registered backends in rank order against one request,
// accepting the first output above the minimum-content threshold and falling
// back to OCR otherwise. One cascade serves any number of concurrent
// requests; it holds no mutable state.
type Cascade struct {
	cfg      Config
	backends []Backend
	fallback OCRFallback
	logger   *slog.Logger
}

func NewCascade(cfg Config, backends []Backend, fallback OCRFallback, logger *slog.Logger) *Cascade {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MinContentLen <= 0 {
		cfg.MinContentLen = DefaultMinContentLen
	}
	if cfg.OCREmptyLen <= 0 {
		cfg.OCREmptyLen = DefaultOCREmptyLen
	}
	ordered := make([]Backend, len(backends))
	copy(ordered, backends)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Descriptor().Rank < ordered[j].Descriptor().Rank
	})
	return &Cascade{cfg: cfg, backends: ordered, fallback: fallback, logger: logger}
}

// DefaultBackends assembles the production backend list for PDFs in rank
// order: in-process text first, then poppler.
func DefaultBackends(pdftotextBin string, caps Capabilities, runner ocr.Runner) []Backend {
	return []Backend{
		NewPDFTextBackend(),
		NewPopplerBackend(pdftotextBin, caps.Pdftotext, runner),
	}
}

// Extract runs the cascade for one request. It returns a terminal error only
// for a caller-input problem or when no backend (OCR included) could even be
// attempted; insufficient text is not an error.
func (c *Cascade) Extract(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	format := constants.MapMediaTypeToFormat(req.MediaType)
	if format == "" {
		return Result{}, common.NewAppError("UNSUPPORTED_MEDIA_TYPE",
			fmt.Sprintf("media type %q is not supported", req.MediaType),
			common.ErrUnsupportedMediaType)
	}

	if format == constants.IMAGE {
		return c.extractImage(ctx, req, start)
	}
	return c.extractPDF(ctx, req, start)
}

func (c *Cascade) extractPDF(ctx context.Context, req Request, start time.Time) (Result, error) {
	var attempted []string
	availableCount := 0

	for _, b := range c.backends {
		d := b.Descriptor()
		if !d.Available {
			c.logger.Debug("backend unavailable, skipping", "backend", d.Name, "filename", req.Filename)
			continue
		}
		availableCount++
		attempted = append(attempted, d.Name)

		text, pages, err := b.TryExtract(ctx, req.Data)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			// recoverable: a single backend failure is never fatal
			c.logger.Warn("backend failed, continuing",
				"backend", d.Name, "filename", req.Filename, "error", err)
			continue
		}
		if len(strings.TrimSpace(text)) > c.cfg.MinContentLen {
			c.logger.Info("extraction accepted",
				"backend", d.Name, "filename", req.Filename,
				"chars", len(text), "pages", pages,
				"elapsed_ms", time.Since(start).Milliseconds())
			return Result{
				Text:       text,
				Method:     d.Method,
				Confidence: d.Confidence,
				PageCount:  pages,
				Elapsed:    time.Since(start),
			}, nil
		}
		c.logger.Info("backend output below threshold",
			"backend", d.Name, "filename", req.Filename, "chars", len(strings.TrimSpace(text)))
	}

	// OCR is the terminal strategy: reached unconditionally, even when every
	// direct backend produced some (insufficient) text.
	if c.fallback == nil || !c.fallback.Available() {
		if availableCount == 0 {
			return Result{}, common.NewAppError("BACKEND_UNAVAILABLE",
				"no extraction backend is available on this host",
				common.ErrBackendUnavailable)
		}
		return Result{}, common.NewAppError("EXTRACTION_FAILED",
			fmt.Sprintf("direct extraction insufficient and no OCR engine available (attempted: %s, elapsed: %s)",
				strings.Join(attempted, ", "), time.Since(start).Round(time.Millisecond)),
			common.ErrBackendUnavailable)
	}

	attempted = append(attempted, "ocr")
	ocrRes, err := c.fallback.ExtractPDF(ctx, req.Data)
	if err != nil {
		return Result{}, common.NewAppError("EXTRACTION_FAILED",
			fmt.Sprintf("ocr fallback failed (attempted: %s, elapsed: %s)",
				strings.Join(attempted, ", "), time.Since(start).Round(time.Millisecond)),
			err)
	}
	return c.finishOCR(req, ocrRes, start), nil
}

func (c *Cascade) extractImage(ctx context.Context, req Request, start time.Time) (Result, error) {
	if c.fallback == nil || !c.fallback.Available() {
		return Result{}, common.NewAppError("BACKEND_UNAVAILABLE",
			"no OCR engine is available for image input",
			common.ErrBackendUnavailable)
	}
	res, err := c.fallback.ExtractImage(ctx, req.Data)
	if err != nil {
		return Result{}, common.NewAppError("EXTRACTION_FAILED",
			fmt.Sprintf("image ocr failed (elapsed: %s)", time.Since(start).Round(time.Millisecond)),
			err)
	}
	return c.finishOCR(req, res, start), nil
}

// finishOCR applies the empty-text policy: OCR output below OCREmptyLen is
// still returned, annotated and downgraded, never raised as an error.
func (c *Cascade) finishOCR(req Request, res OCRResult, start time.Time) Result {
	out := Result{
		Text:       res.Text,
		Method:     res.Method,
		Confidence: res.Confidence,
		PageCount:  res.Pages,
		Language:   res.Language,
		Elapsed:    time.Since(start),
	}
	if len(strings.TrimSpace(res.Text)) < c.cfg.OCREmptyLen {
		out.Method = res.Method + " (no text found)"
		out.Confidence = EmptyTextConfidence
		c.logger.Warn("ocr produced effectively no text",
			"filename", req.Filename, "method", res.Method,
			"chars", len(strings.TrimSpace(res.Text)))
	} else {
		c.logger.Info("ocr extraction accepted",
			"filename", req.Filename, "method", res.Method,
			"chars", len(res.Text), "pages", res.Pages,
			"elapsed_ms", out.Elapsed.Milliseconds())
	}
	return out
}
