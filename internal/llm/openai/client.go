package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/llm"
)

// AssessDocument implements llm.NarrativeAnalyzer using text-only
// chat/completions. Document text is truncated to the context budget before
// it leaves the process; a failure here never invalidates the extraction
// result the caller already holds.
func (c *Client) AssessDocument(ctx context.Context, req llm.AssessRequest) (llm.Assessment, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.assess.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"text_len", len(req.Text),
		"document_type", req.DocumentType,
	)

	schema := llm.BuildAssessmentJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildSystemPrompt()},
			{"role": "user", "content": buildUserPrompt(req, c.cfg.ContextBudget) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, httpErr := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if httpErr != nil {
		c.log.Error("llm.assess.http_error",
			"req_id", rid, "status", status, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Assessment{}, raw, fmt.Errorf("assess document: %w", httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return llm.Assessment{}, raw, fmt.Errorf("%w: decode response: %v", common.ErrRemoteService, err)
	}
	if len(cc.Choices) == 0 {
		return llm.Assessment{}, raw, fmt.Errorf("%w: no choices in response", common.ErrRemoteService)
	}

	content := []byte(strings.TrimSpace(cc.Choices[0].Message.Content))
	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.log.Error("llm.assess.schema_validation_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Assessment{}, content, fmt.Errorf("%w: schema validation failed: %v", common.ErrRemoteService, err)
	}

	var out llm.Assessment
	if err := json.Unmarshal(content, &out); err != nil {
		return llm.Assessment{}, content, fmt.Errorf("%w: unmarshal assessment: %v", common.ErrRemoteService, err)
	}

	c.log.Info("llm.assess.ok",
		"req_id", rid,
		"risk_level", out.RiskLevel,
		"flags", len(out.Flags),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, content, nil
}

func buildSystemPrompt() string {
	parts := []string{
		"You are a mortgage underwriting assistant. Return ONLY JSON that matches the JSON Schema provided.",
		"Write 'summary' as a short narrative assessment of the document's relevance and consistency for a mortgage application.",
		"Set 'risk_level' to low, medium or high based on missing, inconsistent or suspicious information.",
		"List concrete concerns in 'flags'; omit the field when there are none.",
		"Never output null. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

func buildUserPrompt(req llm.AssessRequest, budget int) string {
	var b strings.Builder
	b.WriteString("Filename: ")
	b.WriteString(req.Filename)
	b.WriteString("\nDocument type: ")
	b.WriteString(req.DocumentType)
	if len(req.Fields) > 0 {
		b.WriteString("\nExtracted fields:")
		keys := make([]string, 0, len(req.Fields))
		for k := range req.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("\n  ")
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(req.Fields[k])
		}
	}
	b.WriteString("\n\nDocument text:\n")
	b.WriteString(llm.TruncateToBudget(req.Text, budget))
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
