package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Span is one recognized token or line with its self-reported confidence in
// [0,1].
type Span struct {
	Text       string
	Confidence float32
}

// Engine is one concrete OCR implementation. Availability is resolved once
// at startup; unavailable engines are never attempted.
type Engine interface {
	Name() string
	Available() bool
	// Confidence is the static score attached to image text produced by
	// this engine.
	Confidence() float32
	Recognize(ctx context.Context, imagePath string) ([]Span, error)
}

// TesseractEngine shells out to tesseract in TSV mode, which yields word
// level confidences (0..100).
type TesseractEngine struct {
	bin       string
	lang      string
	available bool
	runner    Runner
}

func NewTesseractEngine(bin, lang string, available bool, runner Runner) *TesseractEngine {
	if bin == "" {
		bin = "tesseract"
	}
	if lang == "" {
		lang = "eng"
	}
	if runner == nil {
		runner = NewExecRunner(nil)
	}
	return &TesseractEngine{bin: bin, lang: lang, available: available, runner: runner}
}

func (e *TesseractEngine) Name() string        { return "tesseract" }
func (e *TesseractEngine) Available() bool     { return e.available }
func (e *TesseractEngine) Confidence() float32 { return TesseractConfidence }

func (e *TesseractEngine) Recognize(ctx context.Context, imagePath string) ([]Span, error) {
	// tesseract <file> stdout -l <lang> tsv
	out, errb, err := e.runner.Run(ctx, e.bin, imagePath, "stdout", "-l", e.lang, "tsv")
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w (%s)", err, strings.TrimSpace(string(errb)))
	}
	return parseTesseractTSV(string(out)), nil
}

// parseTesseractTSV extracts word spans from tesseract TSV output.
// Columns: level page block par line word left top width height conf text.
// Structural rows carry conf -1 and are skipped.
func parseTesseractTSV(out string) []Span {
	var spans []Span
	for i, ln := range strings.Split(out, "\n") {
		if i == 0 || ln == "" { // skip header
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[10]
		if confStr == "" || confStr == "-1" {
			continue
		}
		conf, err := strconv.ParseFloat(confStr, 32)
		if err != nil {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}
		spans = append(spans, Span{Text: word, Confidence: float32(conf) / 100.0})
	}
	return spans
}

// SuryaEngine shells out to the surya_ocr CLI, which writes a results.json
// of text lines with confidences under the output directory.
type SuryaEngine struct {
	bin       string
	available bool
	runner    Runner
}

func NewSuryaEngine(bin string, available bool, runner Runner) *SuryaEngine {
	if bin == "" {
		bin = "surya_ocr"
	}
	if runner == nil {
		runner = NewExecRunner(nil)
	}
	return &SuryaEngine{bin: bin, available: available, runner: runner}
}

func (e *SuryaEngine) Name() string        { return "surya" }
func (e *SuryaEngine) Available() bool     { return e.available }
func (e *SuryaEngine) Confidence() float32 { return SuryaConfidence }

type suryaTextLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type suryaPage struct {
	TextLines []suryaTextLine `json:"text_lines"`
	Page      int             `json:"page"`
}

func (e *SuryaEngine) Recognize(ctx context.Context, imagePath string) ([]Span, error) {
	outputDir, err := os.MkdirTemp("", "di-surya-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(outputDir)

	// surya_ocr --output_dir <dir> <image>
	if _, errb, err := e.runner.Run(ctx, e.bin, "--output_dir", outputDir, imagePath); err != nil {
		return nil, fmt.Errorf("surya: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	base := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	resultsPath := filepath.Join(outputDir, base, "results.json")
	content, err := os.ReadFile(resultsPath)
	if err != nil {
		return nil, fmt.Errorf("surya results: %w", err)
	}

	var results map[string][]suryaPage
	if err := json.Unmarshal(content, &results); err != nil {
		return nil, fmt.Errorf("surya results json: %w", err)
	}

	var spans []Span
	for _, pages := range results {
		for _, page := range pages {
			for _, line := range page.TextLines {
				if strings.TrimSpace(line.Text) == "" {
					continue
				}
				spans = append(spans, Span{Text: line.Text, Confidence: float32(line.Confidence)})
			}
		}
	}
	return spans, nil
}
