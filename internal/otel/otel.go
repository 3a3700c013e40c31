// Package otel wires OpenTelemetry for pitch-check.
//
// Traces and metrics go to an OTLP/HTTP collector when an endpoint is set
// (config file or OTEL_EXPORTER_OTLP_ENDPOINT). The serve command also asks
// for a Prometheus reader so /metrics can expose the evaluation meters.
// Without either, the tracer and meters are no-ops.
package otel

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "pitch-check"

// exportInterval is how often metrics are pushed to the OTLP collector.
const exportInterval = 15 * time.Second

// Version is reported as service.version. cmd sets it from its own Version.
var Version = "dev"

// OTELConfig selects the exporters Init sets up.
type OTELConfig struct {
	Endpoint string // OTLP base URL, e.g. "http://localhost:4318"
	Headers  string // OTEL_EXPORTER_OTLP_HEADERS format: "k1=v1,k2=v2"
	// Prometheus registers a Prometheus reader on the default registry.
	Prometheus bool
}

// Telemetry owns the SDK providers created by Init.
type Telemetry struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider

	Tracer  trace.Tracer
	Metrics *Metrics
}

// collector is an OTLP/HTTP endpoint split into the parts the exporters take.
type collector struct {
	host     string
	basePath string
	insecure bool
	headers  map[string]string
}

// parseCollector splits an OTLP base URL. The signal suffixes (/v1/traces,
// /v1/metrics) are appended to the URL path by the exporter builders.
func parseCollector(endpoint, rawHeaders string) (collector, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return collector{}, fmt.Errorf("invalid OTLP endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return collector{}, fmt.Errorf("invalid OTLP endpoint %q: missing host", endpoint)
	}
	return collector{
		host:     u.Host,
		basePath: strings.TrimRight(u.Path, "/"),
		insecure: u.Scheme == "http",
		headers:  parseHeaders(rawHeaders),
	}, nil
}

// parseHeaders reads the comma-separated key=value list used by
// OTEL_EXPORTER_OTLP_HEADERS. Pairs without a key are skipped.
func parseHeaders(raw string) map[string]string {
	headers := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		headers[key] = strings.TrimSpace(val)
	}
	return headers
}

func (c collector) traceExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(c.host),
		otlptracehttp.WithURLPath(c.basePath + "/v1/traces"),
	}
	if c.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(c.headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(c.headers))
	}
	return otlptracehttp.New(ctx, opts...)
}

func (c collector) metricReader(ctx context.Context) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(c.host),
		otlpmetrichttp.WithURLPath(c.basePath + "/v1/metrics"),
	}
	if c.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(c.headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(c.headers))
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(exportInterval)), nil
}

// Init registers global tracer and meter providers for the configured
// exporters and creates the evaluation instruments. With no exporter the
// globals are left untouched and everything records into no-ops.
func Init(ctx context.Context, cfg OTELConfig) (*Telemetry, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(Version),
		),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("otel resource: %w", err)
	}

	t := &Telemetry{}
	var readers []sdkmetric.Reader

	if cfg.Endpoint != "" {
		c, err := parseCollector(cfg.Endpoint, cfg.Headers)
		if err != nil {
			return nil, err
		}
		spans, err := c.traceExporter(ctx)
		if err != nil {
			return nil, fmt.Errorf("otel trace exporter: %w", err)
		}
		t.tp = sdktrace.NewTracerProvider(sdktrace.WithBatcher(spans), sdktrace.WithResource(res))
		otel.SetTracerProvider(t.tp)

		reader, err := c.metricReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("otel metric exporter: %w", err)
		}
		readers = append(readers, reader)
	}

	if cfg.Prometheus {
		reader, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("otel prometheus exporter: %w", err)
		}
		readers = append(readers, reader)
	}

	if len(readers) > 0 {
		opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
		for _, r := range readers {
			opts = append(opts, sdkmetric.WithReader(r))
		}
		t.mp = sdkmetric.NewMeterProvider(opts...)
		otel.SetMeterProvider(t.mp)
	}

	t.Tracer = otel.Tracer(serviceName)
	if t.Metrics, err = NewMetrics(); err != nil {
		return nil, fmt.Errorf("otel metrics: %w", err)
	}
	return t, nil
}

// Shutdown flushes pending spans and metrics. Errors are dropped so that
// telemetry never fails a command on exit.
func (t *Telemetry) Shutdown(ctx context.Context) {
	if t.tp != nil {
		_ = t.tp.Shutdown(ctx)
	}
	if t.mp != nil {
		_ = t.mp.Shutdown(ctx)
	}
}
