// Package telemetry wires OpenTelemetry traces, metrics and logs plus Pyroscope profiling.
//
// Each OTLP pipeline is built from an Exporter and stays a no-op until enabled,
// so callers can hold a provider unconditionally.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Exporter is the collector connection shared by every OTLP pipeline.
type Exporter struct {
	Enabled           bool
	CollectorEndpoint string
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
}

// resource describes the storefront to the collector
func (e Exporter) resource() (*resource.Resource, error) {
	version := e.ServiceVersion
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(e.ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// logFields are attached to the "pipeline started" message
func (e Exporter) logFields(signal string) []zap.Field {
	return []zap.Field{
		zap.String("signal", signal),
		zap.String("collector_endpoint", e.CollectorEndpoint),
		zap.String("service_name", e.ServiceName),
	}
}

// shutdownPipeline bounds a provider's flush by shutdownTimeout
func shutdownPipeline(ctx context.Context, signal string, log *zap.Logger, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("failed to flush %s pipeline: %w", signal, err)
	}
	log.Debug("OTLP pipeline flushed", zap.String("signal", signal))
	return nil
}
