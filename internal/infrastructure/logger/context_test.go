package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(core))

		FromContext(ctx).Info("hello")
		assert.Equal(t, 1, recorded.Len())
	})

	t.Run("returns no-op logger when missing", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, log := WithRequestID(context.Background(), zap.New(core), "req-1")
	log.Info("first")
	FromContext(ctx).Info("second")

	assert.Equal(t, "req-1", RequestID(ctx))
	for _, e := range recorded.All() {
		assert.Equal(t, "req-1", e.ContextMap()["request_id"])
	}
	assert.Empty(t, RequestID(context.Background()))
}

func TestCtx(t *testing.T) {
	t.Run("prefers the request logger", func(t *testing.T) {
		reqCore, reqLogs := observer.New(zapcore.InfoLevel)
		fbCore, fbLogs := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(reqCore))

		Ctx(ctx, zap.New(fbCore)).Info("cart saved")

		assert.Equal(t, 1, reqLogs.Len())
		assert.Equal(t, 0, fbLogs.Len())
	})

	t.Run("falls back and still adds trace ids", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)

		Ctx(spanContext(t), zap.New(core)).Info("traced", EntityFields("ShoppingCart", 7)...)

		entries := recorded.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
		assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
		assert.Equal(t, "ShoppingCart", fields["aggregate_type"])
		assert.Equal(t, int64(7), fields["id"])
	})

	t.Run("no span leaves the logger untouched", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		Ctx(context.Background(), zap.New(core)).Info("plain")
		assert.NotContains(t, recorded.All()[0].ContextMap(), "trace_id")
	})
}
