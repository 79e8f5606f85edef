package main

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sweepline/voronoi"
)

const serviceName = "voronoi-server"

// telemetryProvider bridges the engine's Recorder to a Prometheus-scraped
// OTel meter, and hands out the tracer Compute spans attach to.
type telemetryProvider struct {
	meterProvider *sdkmetric.MeterProvider
	recorder      *voronoi.OTelRecorder
	tracer        trace.Tracer
}

func newTelemetryProvider(ctx context.Context) (*telemetryProvider, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(serviceName),
	))
	if err != nil {
		return nil, fmt.Errorf("building resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	tracer := otel.Tracer(serviceName)
	recorder, err := voronoi.NewOTelRecorder(mp.Meter(serviceName), tracer)
	if err != nil {
		return nil, fmt.Errorf("building recorder: %w", err)
	}

	return &telemetryProvider{meterProvider: mp, recorder: recorder, tracer: tracer}, nil
}

func (t *telemetryProvider) shutdown(ctx context.Context) error {
	if t.meterProvider == nil {
		return nil
	}
	return t.meterProvider.Shutdown(ctx)
}
