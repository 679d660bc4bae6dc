package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// HTTPMetricsConfig configures HTTPMetrics.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	Enabled       bool
	Logger        *zap.Logger
}

// unmatchedRoute labels requests that hit no registered route
const unmatchedRoute = "unknown"

// requestInstruments records the http_server_* series.
type requestInstruments struct {
	total    *telemetry.Counter
	duration *telemetry.Histogram
	reqSize  *telemetry.Histogram
	respSize *telemetry.Histogram
	inFlight metric.Int64UpDownCounter
}

func newRequestInstruments(meter metric.Meter) (*requestInstruments, error) {
	var (
		ri  requestInstruments
		err error
	)
	if ri.total, err = telemetry.NewCounter(meter,
		"http_server_request_total", "Requests served by method, route and status", "{request}"); err != nil {
		return nil, err
	}
	if ri.duration, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name: "http_server_request_duration_seconds", Description: "Request latency",
		Unit: "s", Boundaries: telemetry.HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if ri.reqSize, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name: "http_server_request_size_bytes", Description: "Request body size",
		Unit: "By", Boundaries: telemetry.PayloadSizeBuckets,
	}); err != nil {
		return nil, err
	}
	if ri.respSize, err = telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name: "http_server_response_size_bytes", Description: "Response body size",
		Unit: "By", Boundaries: telemetry.PayloadSizeBuckets,
	}); err != nil {
		return nil, err
	}
	if ri.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	return &ri, nil
}

func (ri *requestInstruments) handler(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()
	bodySize := c.Request.ContentLength

	ri.inFlight.Add(ctx, 1)
	c.Next()
	ri.inFlight.Add(ctx, -1)

	attrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(c.Request.Method),
		telemetry.AttrHTTPRoute.String(routeLabel(c)),
	}
	ri.total.Inc(ctx, append(attrs, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))...)
	ri.duration.RecordDuration(ctx, time.Since(start), attrs...)
	if bodySize > 0 {
		ri.reqSize.Record(ctx, float64(bodySize), attrs...)
	}
	if n := c.Writer.Size(); n > 0 {
		ri.respSize.Record(ctx, float64(n), attrs...)
	}
}

// routeLabel uses the route template so entity IDs never become label values
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

func passThrough(c *gin.Context) {
	c.Next()
}

// HTTPMetrics records request count, latency, payload sizes and in-flight
// requests when the meter provider exports.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return passThrough
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ri, err := newRequestInstruments(cfg.MeterProvider.Meter("http.server"))
	if err != nil {
		log.Warn("HTTP metrics disabled", zap.Error(err))
		return passThrough
	}
	return ri.handler
}

// HTTPMetricsWithMeter is HTTPMetrics for a caller-owned meter.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	ri, err := newRequestInstruments(meter)
	if err != nil {
		return passThrough
	}
	return ri.handler
}
