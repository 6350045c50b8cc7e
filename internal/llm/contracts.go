package llm

import "context"

// AssessRequest carries one document's extracted text and analysis context
// into the remote reasoning service.
type AssessRequest struct {
	Text         string
	Filename     string
	DocumentType string
	// Fields are scalar analysis fields passed as hints (field name -> value).
	Fields map[string]string
}

// Assessment is the normalized narrative shape we want back from the model.
type Assessment struct {
	Summary    string   `json:"summary"`
	RiskLevel  string   `json:"risk_level"` // "low" | "medium" | "high"
	Flags      []string `json:"flags,omitempty"`
	Confidence float32  `json:"confidence,omitempty"` // optional (0..1)
}

// NarrativeAnalyzer is the interface the pipeline depends on. The remote
// service is fully opaque; implementations must enforce a bounded timeout
// and surface connection/auth/status failures as distinct error kinds.
type NarrativeAnalyzer interface {
	AssessDocument(ctx context.Context, req AssessRequest) (Assessment, []byte /*rawJSON*/, error)
}
