package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"
)

// ExtractImage decodes a raster upload, applies the preprocessing pipeline
// and runs it through the engines. The winning engine's name is carried in
// the method label.
func (a *Adapter) ExtractImage(ctx context.Context, data []byte) (Result, error) {
	if !a.Available() {
		return Result{}, fmt.Errorf("no OCR engine available")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "di-img-*")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "input.png")
	if err := writePNG(path, Preprocess(img)); err != nil {
		return Result{}, fmt.Errorf("write preprocessed image: %w", err)
	}

	text, engine, err := a.recognizeFile(ctx, path)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Text:       text,
		Method:     "image-ocr (" + engine.Name() + ")",
		Pages:      1,
		Confidence: engine.Confidence(),
		Language:   a.cfg.Language,
	}, nil
}
