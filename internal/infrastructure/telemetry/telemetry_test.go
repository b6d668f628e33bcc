package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestProviders_Disabled(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	tp, err := NewTracerProvider(ctx, Config{Enabled: false, ServiceName: "test"}, logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	tp.EnableSpanProfiles()
	assert.False(t, tp.spanProfilesEnabled)
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, MetricsConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, LogsConfig{Enabled: false}, logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.Same(t, logger, lp.Bridge(logger, zapcore.InfoLevel))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased")
}

func TestStartServiceSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartServiceSpan(context.Background(), "ledger", "record_transaction",
		SpanAttrShopID, "shop-a",
		SpanAttrAmount, 12.5,
		42, "ignored key",
	)
	AddEvent(span, "balance_updated", "due_balance", "60")
	RecordError(span, errors.New("append failed"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "ledger.record_transaction", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Len(t, got.Attributes(), 2)
	require.Len(t, got.Events(), 2) // event + recorded error
	assert.Equal(t, "balance_updated", got.Events()[0].Name)
}

func TestLevelFilterCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	filtered := &levelFilterCore{Core: core, minLevel: zapcore.WarnLevel}
	logger := zap.New(filtered).With(zap.String("k", "v"))

	logger.Info("dropped")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
	assert.False(t, filtered.Enabled(zapcore.DebugLevel))
}

func TestRegisterDBTracing_DisabledIsNoop(t *testing.T) {
	assert.NoError(t, RegisterDBTracing(nil, DBTracingConfig{Enabled: false}, zap.NewNop()))
}

func TestHistogram_RecordDuration(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)
	h, err := NewHistogram(mp.Meter("test"), HistogramOpts{Name: "test.duration", Unit: "s", Boundaries: SmallDurationBuckets})
	require.NoError(t, err)
	h.RecordDuration(context.Background(), 3*time.Millisecond)
}

func TestTracerProvider_EnableSpanProfiles(t *testing.T) {
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	sdk := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = sdk.Shutdown(context.Background()) })
	tp := &TracerProvider{provider: sdk, logger: zaptest.NewLogger(t), config: Config{Enabled: true}}

	tp.EnableSpanProfiles()
	tp.EnableSpanProfiles()

	assert.True(t, tp.spanProfilesEnabled)
	_, unwrapped := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, unwrapped)
}
