package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/timvw/pitch-check/internal/model"
	"github.com/xeipuuv/gojsonschema"
)

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(SchemaJSON))
})

// ParseEvaluation turns raw model output into a validated evaluation.
// Missing fields are rejected, never defaulted, and out-of-range scores are
// rejected rather than clamped.
func ParseEvaluation(text string) (*model.BusinessEvaluation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewError(ErrEmptyResponse, "", nil)
	}
	payload := stripMarkdownFences(text)

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, NewError(ErrMalformedResponse, "", err)
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var ev model.BusinessEvaluation
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, NewError(ErrSchemaViolation, "", err)
	}
	return &ev, nil
}

// validateDocument checks a decoded JSON document against the evaluation schema.
func validateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		panic(fmt.Sprintf("evaluator: invalid embedded schema: %v", err))
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return NewError(ErrSchemaViolation, "", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		violations[i] = desc.String()
	}
	return NewError(ErrSchemaViolation, strings.Join(violations, "; "), nil)
}

// schemaDocument returns the schema as a generic map, the form SDKs accept.
func schemaDocument(raw json.RawMessage) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding response schema: %w", err)
	}
	return doc, nil
}
