package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/erain9/lob/pkg/telemetry"

// Config selects where telemetry goes. Shipping spans/metrics to a remote
// collector is a networking concern outside this module's scope, so the
// only exporters wired here write to stdout; everything upstream of the
// exporter (providers, instruments, spans) is the real OpenTelemetry SDK.
type Config struct {
	ServiceName string
	Enabled     bool
}

// Provider owns the tracer/meter providers for one process and the
// shutdown function that flushes and closes their exporters.
type Provider struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Shutdown       func(context.Context) error
}

// Init builds a Provider. When cfg.Enabled is false it returns a Provider
// backed by OpenTelemetry's no-op implementations, so callers never need to
// branch on whether telemetry is on.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{Shutdown: func(context.Context) error { return nil }}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: build trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	metricExporter, err := stdoutmetric.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: build metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	return &Provider{
		TracerProvider: tp,
		MeterProvider:  mp,
		Shutdown: func(ctx context.Context) error {
			if err := tp.Shutdown(ctx); err != nil {
				return err
			}
			return mp.Shutdown(ctx)
		},
	}, nil
}

// Tracer returns this provider's tracer, falling back to the globally
// registered one (a no-op if Init was never called) when p is nil.
func (p *Provider) Tracer() trace.Tracer {
	if p == nil || p.TracerProvider == nil {
		return otel.Tracer(instrumentationName)
	}
	return p.TracerProvider.Tracer(instrumentationName)
}

// Meter returns this provider's meter, mirroring Tracer's nil-safety.
func (p *Provider) Meter() otelmetric.Meter {
	if p == nil || p.MeterProvider == nil {
		return otel.Meter(instrumentationName)
	}
	return p.MeterProvider.Meter(instrumentationName)
}
