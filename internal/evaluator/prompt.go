package evaluator

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// SystemPrompt is the system-level instruction sent with every request.
// Loaded from prompts/system.md at compile time.
//
//go:embed prompts/system.md
var SystemPrompt string

// InstructionTemplate is the user-level prompt. The proposal replaces
// proposalPlaceholder verbatim.
//
//go:embed prompts/instruction.md
var InstructionTemplate string

// SchemaJSON is the structured-output schema for BusinessEvaluation.
//
//go:embed prompts/evaluation.schema.json
var SchemaJSON []byte

// SchemaName identifies the schema to providers that require a name.
const SchemaName = "business_evaluation"

const proposalPlaceholder = "{{PROPOSAL}}"

// Request is a single evaluation request. It is built once per submission
// and never modified afterwards.
type Request struct {
	// ID correlates logs and spans for this request.
	ID string
	// Instruction is the user prompt with the proposal embedded.
	Instruction string
	// Schema is the JSON schema the response must satisfy.
	Schema json.RawMessage
}

// NewRequest embeds the proposal into the fixed instruction template.
func NewRequest(proposal string) Request {
	return Request{
		ID:          uuid.NewString(),
		Instruction: strings.Replace(InstructionTemplate, proposalPlaceholder, proposal, 1),
		Schema:      json.RawMessage(SchemaJSON),
	}
}

// stripMarkdownFences removes a surrounding ``` or ```json fence, which some
// models add even when asked for bare JSON. The fence may span lines or sit on
// a single line. When nothing is left inside the fence the trimmed input is
// returned as is, so it fails to parse instead of looking empty.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := s[len("```"):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body), "```"))
	if body == "" {
		return s
	}
	return body
}
