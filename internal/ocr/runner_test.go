package ocr

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestExecRunnerLogsThroughInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := NewExecRunner(logger)
	if _, _, err := r.Run(context.Background(), "no-such-binary-for-this-host"); err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(buf.String(), "exec failed") {
		t.Errorf("failure not logged via injected logger: %q", buf.String())
	}
}

func TestClipStderr(t *testing.T) {
	long := strings.Repeat("e", 100)
	got := clipStderr(long, 10)
	if got != long[:10]+"...(truncated)" {
		t.Errorf("clipStderr = %q", got)
	}
	if clipStderr("short", 10) != "short" {
		t.Error("short input must pass through unchanged")
	}
}
