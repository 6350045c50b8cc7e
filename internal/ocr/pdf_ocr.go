package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ExtractPDF rasterizes each page with pdftoppm at the configured DPI and
// OCRs the pages independently. Page results are concatenated in page order
// with a separating newline; a single failed page is tolerated.
func (a *Adapter) ExtractPDF(ctx context.Context, data []byte) (Result, error) {
	if !a.Available() {
		return Result{}, fmt.Errorf("no OCR engine available")
	}

	tmpDir, err := os.MkdirTemp("", "di-pp-*")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return Result{}, err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	if _, errb, err := a.runner.Run(ctx, a.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", a.cfg.RasterDPI), "-png", in, prefix); err != nil {
		return Result{}, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...); pdftoppm
	// zero-pads the index so a lexical sort preserves page order
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if a.cfg.MaxPages > 0 && len(matches) > a.cfg.MaxPages {
		matches = matches[:a.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return Result{}, fmt.Errorf("pdftoppm produced no images")
	}

	texts := make([]string, len(matches))
	failures := make([]bool, len(matches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.PageWorkers)
	for i, img := range matches {
		g.Go(func() error {
			path := img
			if pre, err := a.preprocessPage(img); err == nil {
				path = pre
			}
			text, _, err := a.recognizeFile(gctx, path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				a.logger.Warn("page ocr failed", "page", i+1, "error", err)
				failures[i] = true
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	allFailed := true
	for _, f := range failures {
		if !f {
			allFailed = false
			break
		}
	}
	if allFailed {
		return Result{}, fmt.Errorf("ocr failed on all %d pages", len(matches))
	}

	return Result{
		Text:       strings.TrimSpace(strings.Join(texts, "\n")),
		Method:     "ocr (rasterized pages)",
		Pages:      len(matches),
		Confidence: PDFOCRConfidence,
		Language:   a.cfg.Language,
	}, nil
}

// preprocessPage runs the image cleanup pipeline on a rendered page and
// writes the result next to the original.
func (a *Adapter) preprocessPage(path string) (string, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return "", err
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".pre.png"
	if err := writePNG(out, Preprocess(img)); err != nil {
		return "", err
	}
	return out, nil
}
