package extract

import (
	"log/slog"
	"os/exec"
)

// Capabilities records which external tools are present. It is computed once
// at process start and passed into the constructors; unavailable backends
// are skipped, never attempted.
type Capabilities struct {
	Pdftotext bool
	Pdftoppm  bool
	Tesseract bool
	Surya     bool
}

// DetectCapabilities probes the configured binaries with LookPath.
func DetectCapabilities(pdftotext, pdftoppm, tesseract, surya string, logger *slog.Logger) Capabilities {
	if logger == nil {
		logger = slog.Default()
	}
	caps := Capabilities{
		Pdftotext: lookPathOK(pdftotext),
		Pdftoppm:  lookPathOK(pdftoppm),
		Tesseract: lookPathOK(tesseract),
		Surya:     lookPathOK(surya),
	}
	logger.Info("capabilities detected",
		"pdftotext", caps.Pdftotext,
		"pdftoppm", caps.Pdftoppm,
		"tesseract", caps.Tesseract,
		"surya", caps.Surya,
	)
	return caps
}

func lookPathOK(name string) bool {
	if name == "" {
		return false
	}
	_, err := exec.LookPath(name)
	return err == nil
}
