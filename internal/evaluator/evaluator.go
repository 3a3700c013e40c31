// Package evaluator sends business proposals to a generative model and turns
// the response into a validated model.BusinessEvaluation.
//
// All judgment (SWOT, risk, score) comes from the model. This package only
// builds the prompt and structured-output schema, performs a single call,
// and rejects anything that does not match the schema.
package evaluator

import (
	"context"
	"net/http"

	"github.com/timvw/pitch-check/internal/model"
)

// Provider is a generative model endpoint. Implementations make exactly one
// call per Generate and never retry.
type Provider interface {
	// Generate sends the request and returns the raw response text.
	Generate(ctx context.Context, req Request) (*Completion, error)

	// Name returns the provider name (e.g., "gemini", "openai").
	Name() string

	// Model returns the model name used for evaluation.
	Model() string
}

// ProviderConfig is the connection setup shared by all providers.
type ProviderConfig struct {
	// BaseURL overrides the API endpoint, e.g. an Azure AI Foundry resource.
	BaseURL string
	APIKey  string
	// Model is the provider-specific model name.
	Model string
	// MaxTokens caps output tokens. Zero means the provider default.
	MaxTokens int64
	// ExtraHeaders are sent on every request ("api-key" for Azure).
	ExtraHeaders map[string]string
	// HTTPClient overrides the transport; nil uses the SDK default.
	HTTPClient *http.Client
}

// defaultMaxTokens is used by providers whose API requires an output cap.
const defaultMaxTokens = 4096

func (c ProviderConfig) outputCap() int64 {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

// Completion is the raw provider response.
type Completion struct {
	// Text is the response payload, expected to be a JSON document.
	Text string
	// FinishReason is the provider's stop reason, if reported.
	FinishReason string
	// ResponseID is the provider's response identifier, if reported.
	ResponseID string
	// Usage tracks token consumption for this call.
	Usage model.TokenUsage
}
