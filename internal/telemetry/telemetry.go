// Package telemetry sets up OpenTelemetry tracing for the API client.
// When no OTLP endpoint is configured, a no-op tracer is used.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName is the tracer name used for all clinicdash spans.
const InstrumentationName = "clinicdash/api"

// Config controls the OTLP exporter.
type Config struct {
	Endpoint    string // host:port; empty disables export
	ServiceName string
	Insecure    bool
}

// Provider owns the tracer provider and hands out the tracer.
type Provider struct {
	sdk    *sdktrace.TracerProvider // nil when disabled
	tracer oteltrace.Tracer
}

// New creates a Provider exporting over OTLP/HTTP if cfg.Endpoint is set.
// Returns a no-op Provider otherwise.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return Disabled(), nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "clinicdash"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	return FromSDK(sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)), nil
}

// FromSDK wraps an existing SDK tracer provider (e.g. one backed by a span recorder in tests).
func FromSDK(tp *sdktrace.TracerProvider) *Provider {
	return &Provider{sdk: tp, tracer: tp.Tracer(InstrumentationName)}
}

// Disabled returns a Provider whose spans are discarded.
func Disabled() *Provider {
	return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Tracer returns the tracer for API spans. Safe on a nil Provider.
func (p *Provider) Tracer() oteltrace.Tracer {
	if p == nil {
		return Disabled().tracer
	}
	return p.tracer
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
