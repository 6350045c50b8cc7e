package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/homeward-labs/docintel/internal/ocr"
)

// PopplerBackend shells out to pdftotext with layout preservation. It copes
// better with column/table layouts than in-process extraction, at the cost
// of a subprocess per request.
type PopplerBackend struct {
	bin       string
	available bool
	runner    ocr.Runner
}

func NewPopplerBackend(bin string, available bool, runner ocr.Runner) *PopplerBackend {
	if bin == "" {
		bin = "pdftotext"
	}
	if runner == nil {
		runner = ocr.NewExecRunner(nil)
	}
	return &PopplerBackend{bin: bin, available: available, runner: runner}
}

func (b *PopplerBackend) Descriptor() Descriptor {
	return Descriptor{
		Name:       "pdftotext",
		Method:     "pdftotext (layout)",
		Rank:       2,
		Available:  b.available,
		Confidence: ConfidencePdftotext,
	}
}

func (b *PopplerBackend) TryExtract(ctx context.Context, data []byte) (string, int, error) {
	tmpDir, err := os.MkdirTemp("", "di-pt-*")
	if err != nil {
		return "", 0, err
	}
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return "", 0, err
	}

	// pdftotext -layout -enc UTF-8 -eol unix <in.pdf> -
	out, errb, err := b.runner.Run(ctx, b.bin, "-layout", "-enc", "UTF-8", "-eol", "unix", in, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w (%s)", err, truncateStderr(errb))
	}

	text := strings.TrimSpace(string(out))
	return text, PDFPageCount(data), nil
}

func truncateStderr(b []byte) string {
	const max = 512
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
