package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildAssessmentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. We pass this to the model as a structured output constraint
// and also use it locally to validate whatever comes back.
func BuildAssessmentJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary": map[string]any{"type": "string", "minLength": 1},
			"risk_level": map[string]any{
				"type": "string",
				"enum": []string{"low", "medium", "high"},
			},
			"flags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"summary", "risk_level"},
	}
}

// ValidateJSONAgainstSchema validates doc against the generic-map schema.
func ValidateJSONAgainstSchema(schema map[string]any, doc []byte) error {
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(string(schemaBytes))); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	return compiled.Validate(v)
}
