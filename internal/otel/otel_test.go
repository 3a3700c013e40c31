package otel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{name: "empty", raw: "", want: map[string]string{}},
		{name: "single", raw: "Authorization=Basic abc", want: map[string]string{"Authorization": "Basic abc"}},
		{name: "multiple with spaces", raw: " a = 1 , b=2 ", want: map[string]string{"a": "1", "b": "2"}},
		{name: "value with equals", raw: "k=v=w", want: map[string]string{"k": "v=w"}},
		{name: "missing key skipped", raw: "=v,ok=1", want: map[string]string{"ok": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseHeaders(tt.raw))
		})
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordTokens(ctx, "gemini", "m", 1, 2)
	m.RecordEvaluation(ctx, "success", time.Second)
	m.RecordScore(ctx, 50)
}

func TestRecordEvaluation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := newMetrics(provider.Meter(meterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordEvaluation(ctx, "success", 120*time.Millisecond)
	m.RecordEvaluation(ctx, "transport", 5*time.Millisecond)
	m.RecordEvaluation(ctx, "success", 80*time.Millisecond)
	m.RecordTokens(ctx, "gemini", "gemini-3-flash-preview", 100, 40)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	var inputTokens int64
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch metric.Name {
				case "evaluations.total":
					outcome, _ := dp.Attributes.Value("evaluation.outcome")
					counts[outcome.AsString()] += dp.Value
				case "llm.tokens.input":
					inputTokens += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), counts["success"])
	assert.Equal(t, int64(1), counts["transport"])
	assert.Equal(t, int64(100), inputTokens)
}

func TestInitWithoutExportersIsNoop(t *testing.T) {
	tel, err := Init(context.Background(), OTELConfig{})
	require.NoError(t, err)
	require.NotNil(t, tel.Metrics)
	assert.Nil(t, tel.tp)
	assert.Nil(t, tel.mp)
	tel.Shutdown(context.Background())
}

func TestParseCollector(t *testing.T) {
	c, err := parseCollector("http://localhost:3000/api/public/otel/", "Authorization=Basic abc")
	require.NoError(t, err)
	assert.Equal(t, "localhost:3000", c.host)
	assert.Equal(t, "/api/public/otel", c.basePath)
	assert.True(t, c.insecure)
	assert.Equal(t, map[string]string{"Authorization": "Basic abc"}, c.headers)

	c, err = parseCollector("https://otel.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "", c.basePath)
	assert.False(t, c.insecure)

	_, err = parseCollector("not a url", "")
	assert.Error(t, err)
}
