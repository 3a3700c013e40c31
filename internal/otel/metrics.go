package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pitch-check"

// Metrics holds all OTEL metric instruments for pitch-check.
// All instruments are safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	// LLM token counters (partitioned by provider + model via attributes)
	InputTokens  metric.Int64Counter
	OutputTokens metric.Int64Counter

	// Evaluation counter partitioned by outcome (success, transport, schema_violation, ...)
	Evaluations metric.Int64Counter
	// EvaluationDuration is the wall-clock time of the provider round trip.
	EvaluationDuration metric.Float64Histogram
	// OverallScore is the distribution of accepted scores.
	OverallScore metric.Float64Histogram
}

// NewMetrics creates all metric instruments on the global MeterProvider.
// Instruments are no-ops when no MeterProvider is registered.
func NewMetrics() (*Metrics, error) {
	return newMetrics(otel.Meter(meterName))
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.InputTokens, err = meter.Int64Counter("llm.tokens.input",
		metric.WithDescription("Total LLM input tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	m.OutputTokens, err = meter.Int64Counter("llm.tokens.output",
		metric.WithDescription("Total LLM output tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	m.Evaluations, err = meter.Int64Counter("evaluations.total",
		metric.WithDescription("Total proposal evaluations partitioned by outcome"))
	if err != nil {
		return nil, err
	}

	m.EvaluationDuration, err = meter.Float64Histogram("evaluations.duration",
		metric.WithDescription("Duration of the model round trip per evaluation"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	m.OverallScore, err = meter.Float64Histogram("evaluations.overall_score",
		metric.WithDescription("Distribution of accepted overall scores"),
		metric.WithExplicitBucketBoundaries(20, 40, 60, 80, 100))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordTokens records LLM token usage on the metric counters.
func (m *Metrics) RecordTokens(ctx context.Context, provider, model string, input, output int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", model),
	)
	m.InputTokens.Add(ctx, input, attrs)
	m.OutputTokens.Add(ctx, output, attrs)
}

// RecordEvaluation records one evaluation attempt with its outcome.
func (m *Metrics) RecordEvaluation(ctx context.Context, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("evaluation.outcome", outcome))
	m.Evaluations.Add(ctx, 1, attrs)
	m.EvaluationDuration.Record(ctx, float64(d.Milliseconds()), attrs)
}

// RecordScore records an accepted overall score.
func (m *Metrics) RecordScore(ctx context.Context, score float64) {
	if m == nil {
		return
	}
	m.OverallScore.Record(ctx, score)
}
