// Package trace wires dialogo's observability: an OpenTelemetry tracer
// provider for controller spans and an in-memory Recorder of published
// snapshots.
package trace

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name used for controller spans.
const TracerName = "dialogo/modal"

// ProviderConfig selects where spans go.
type ProviderConfig struct {
	Endpoint    string // OTLP/HTTP host:port or URL; empty disables export
	ServiceName string
	Insecure    bool
}

// Provider owns the tracer provider for controller spans.
// A nil or disabled Provider hands out no-op tracers.
type Provider struct {
	provider *sdktrace.TracerProvider
	enabled  bool
}

// NewProvider creates an OTLP/HTTP-backed provider.
// Returns a disabled provider if cfg.Endpoint is empty.
func NewProvider(ctx context.Context, cfg ProviderConfig, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	if cfg.Endpoint == "" {
		return &Provider{}, nil
	}

	var clientOpts []otlptracehttp.Option
	if strings.Contains(cfg.Endpoint, "://") {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	} else {
		clientOpts = append(clientOpts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter %q: %w", cfg.Endpoint, err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "dialogo"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	providerOpts := append([]sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	}, opts...)

	return &Provider{
		provider: sdktrace.NewTracerProvider(providerOpts...),
		enabled:  true,
	}, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Tracer returns the tracer for controller spans.
func (p *Provider) Tracer() oteltrace.Tracer {
	if !p.Enabled() {
		return noop.NewTracerProvider().Tracer(TracerName)
	}
	return p.provider.Tracer(TracerName)
}

// Shutdown flushes and closes the exporter.
// Must be called before process exit so batched spans are not lost.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
