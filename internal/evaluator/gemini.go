package evaluator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/timvw/pitch-check/internal/model"
	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API with a JSON response schema.
type GeminiProvider struct {
	client    *genai.Client
	model     string
	maxTokens int64
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg ProviderConfig) (*GeminiProvider, error) {
	httpOpts := genai.HTTPOptions{BaseURL: cfg.BaseURL}
	if len(cfg.ExtraHeaders) > 0 {
		httpOpts.Headers = http.Header{}
		for k, v := range cfg.ExtraHeaders {
			httpOpts.Headers.Set(k, v)
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: httpOpts,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiProvider{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns "gemini".
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the model name.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Generate sends the instruction with responseMimeType application/json and
// the evaluation schema as responseSchema.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Completion, error) {
	doc, err := schemaDocument(req.Schema)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    geminiSchema(doc),
	}
	if p.maxTokens > 0 {
		config.MaxOutputTokens = int32(p.maxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Instruction), config)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}

	c := &Completion{
		Text:       resp.Text(),
		ResponseID: resp.ResponseID,
	}
	if len(resp.Candidates) > 0 {
		c.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	if resp.UsageMetadata != nil {
		c.Usage = model.TokenUsage{
			InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return c, nil
}

// geminiSchema converts the JSON schema subset used by the evaluation schema
// (type, properties, required, items, minimum, maximum, description) into
// the Gemini OpenAPI-style schema.
func geminiSchema(doc map[string]any) *genai.Schema {
	s := &genai.Schema{}
	if t, ok := doc["type"].(string); ok {
		s.Type = genai.Type(strings.ToUpper(t))
	}
	if d, ok := doc["description"].(string); ok {
		s.Description = d
	}
	if props, ok := doc["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if child, ok := raw.(map[string]any); ok {
				s.Properties[name] = geminiSchema(child)
			}
		}
	}
	if req, ok := doc["required"].([]any); ok {
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	if items, ok := doc["items"].(map[string]any); ok {
		s.Items = geminiSchema(items)
	}
	if v, ok := doc["minimum"].(float64); ok {
		s.Minimum = &v
	}
	if v, ok := doc["maximum"].(float64); ok {
		s.Maximum = &v
	}
	return s
}
