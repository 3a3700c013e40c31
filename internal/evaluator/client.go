package evaluator

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/timvw/pitch-check/internal/model"
	telem "github.com/timvw/pitch-check/internal/otel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var evalTracer = otel.Tracer("pitch-check/evaluator")

// Client evaluates proposals through a Provider.
type Client struct {
	provider   Provider
	credential string
	logger     *zap.Logger
	metrics    *telem.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records evaluation metrics on m.
func WithMetrics(m *telem.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client. The credential is the API key the provider was
// built with; when it is empty, every Evaluate fails with ErrConfiguration
// before touching the provider. provider may be nil in that case.
func NewClient(provider Provider, credential string, opts ...Option) *Client {
	c := &Client{
		provider:   provider,
		credential: credential,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether Evaluate can reach a provider at all.
func (c *Client) Configured() bool {
	return c.provider != nil && strings.TrimSpace(c.credential) != ""
}

// Result is a successful evaluation plus call metadata.
type Result struct {
	Evaluation *model.BusinessEvaluation
	Usage      model.TokenUsage
	RequestID  string
	Provider   string
	Model      string
	Duration   time.Duration
}

// Evaluate sends a proposal to the provider and validates the response.
// It makes at most one provider call. Every failure is an *Error.
func (c *Client) Evaluate(ctx context.Context, proposal string) (*Result, error) {
	if !c.Configured() {
		err := NewError(ErrConfiguration, "no API key configured for the model provider", nil)
		c.metrics.RecordEvaluation(ctx, KindName(err), 0)
		c.logger.Warn("evaluation skipped", zap.Error(err))
		return nil, err
	}
	if model.IsBlank(proposal) {
		return nil, NewError(ErrEmptyProposal, "", nil)
	}

	req := NewRequest(proposal)
	providerName, modelName := c.provider.Name(), c.provider.Model()
	log := c.logger.With(
		zap.String("request_id", req.ID),
		zap.String("provider", providerName),
		zap.String("model", modelName),
	)

	// GenAI client span, named "{operation} {model}".
	ctx, span := evalTracer.Start(ctx, "chat "+modelName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.operation.name", "chat"),
			attribute.String("gen_ai.provider.name", providerName),
			attribute.String("gen_ai.request.model", modelName),
			attribute.String("gen_ai.output.type", "json"),
			attribute.String("evaluation.request_id", req.ID),
		),
	)
	defer span.End()

	inputMessages := []map[string]string{
		{"role": "system", "content": SystemPrompt},
		{"role": "user", "content": req.Instruction},
	}
	if inputJSON, err := json.Marshal(inputMessages); err == nil {
		span.SetAttributes(attribute.String("gen_ai.input.messages", string(inputJSON)))
	}

	start := time.Now()
	result, err := c.call(ctx, span, req)
	elapsed := time.Since(start)

	outcome := KindName(err)
	c.metrics.RecordEvaluation(ctx, outcome, elapsed)
	if err != nil {
		span.SetAttributes(attribute.String("error.type", outcome))
		span.SetStatus(codes.Error, err.Error())
		log.Warn("evaluation failed",
			zap.String("outcome", outcome),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return nil, err
	}

	result.RequestID = req.ID
	result.Provider = providerName
	result.Model = modelName
	result.Duration = elapsed

	c.metrics.RecordTokens(ctx, providerName, modelName, result.Usage.InputTokens, result.Usage.OutputTokens)
	c.metrics.RecordScore(ctx, result.Evaluation.OverallScore)
	log.Info("evaluation completed",
		zap.Float64("overall_score", result.Evaluation.OverallScore),
		zap.Int64("input_tokens", result.Usage.InputTokens),
		zap.Int64("output_tokens", result.Usage.OutputTokens),
		zap.Duration("duration", elapsed))
	return result, nil
}

func (c *Client) call(ctx context.Context, span trace.Span, req Request) (*Result, error) {
	completion, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, NewError(ErrTransport, "", err)
	}
	if completion == nil {
		return nil, NewError(ErrEmptyResponse, "", nil)
	}

	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", completion.Usage.InputTokens),
		attribute.Int64("gen_ai.usage.output_tokens", completion.Usage.OutputTokens),
	)
	if completion.ResponseID != "" {
		span.SetAttributes(attribute.String("gen_ai.response.id", completion.ResponseID))
	}
	if completion.FinishReason != "" {
		span.SetAttributes(attribute.StringSlice("gen_ai.response.finish_reasons", []string{completion.FinishReason}))
	}
	outputMessages := []map[string]string{
		{"role": "assistant", "content": completion.Text},
	}
	if outputJSON, err := json.Marshal(outputMessages); err == nil {
		span.SetAttributes(attribute.String("gen_ai.output.messages", string(outputJSON)))
	}

	ev, err := ParseEvaluation(completion.Text)
	if err != nil {
		return nil, err
	}
	return &Result{Evaluation: ev, Usage: completion.Usage}, nil
}
