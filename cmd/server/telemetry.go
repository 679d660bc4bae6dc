package main

import (
	"context"
	"fmt"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

type telemetryProviders struct {
	tracer   *telemetry.TracerProvider
	meter    *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
}

// setupTelemetry starts the trace, metric, log and profile pipelines.
// Each one is a no-op unless enabled in the telemetry section.
func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*telemetryProviders, error) {
	tc := cfg.Telemetry
	p := &telemetryProviders{}
	var err error

	exp := telemetry.Exporter{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          tc.Insecure,
	}

	p.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.Config{Exporter: exp, SamplingRatio: tc.SamplingRatio}, log)
	if err != nil {
		return nil, fmt.Errorf("tracer provider: %w", err)
	}

	metricsExp := exp
	metricsExp.Enabled = tc.Enabled && tc.MetricsEnabled
	p.meter, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{Exporter: metricsExp, ExportInterval: tc.MetricsInterval}, log)
	if err != nil {
		return nil, fmt.Errorf("meter provider: %w", err)
	}

	logsExp := exp
	logsExp.Enabled = tc.Enabled && tc.LogsEnabled
	p.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{Exporter: logsExp}, log)
	if err != nil {
		return nil, fmt.Errorf("logger provider: %w", err)
	}

	p.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         tc.ProfilingEnabled,
		ServerAddress:   tc.PyroscopeURL,
		ApplicationName: tc.ServiceName,
		Tags:            map[string]string{"env": cfg.App.Env, "version": cfg.App.Version},
	}, log)
	if err != nil {
		return nil, fmt.Errorf("profiler: %w", err)
	}
	if p.profiler.IsEnabled() && p.tracer.IsEnabled() {
		p.tracer.EnableSpanProfiles()
	}

	return p, nil
}

// shutdown flushes every pipeline, logs go last so earlier failures are exported
func (p *telemetryProviders) shutdown(ctx context.Context, log *zap.Logger) {
	if err := p.tracer.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := p.meter.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := p.profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := p.logs.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
}
