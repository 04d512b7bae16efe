package xmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestObserver(t *testing.T) (Observer, *sdkmetric.ManualReader, *tracetest.SpanRecorder) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	obs, err := NewOTelObserver(
		WithMeterProvider(meterProvider),
		WithTracerProvider(tracerProvider),
	)
	require.NoError(t, err)
	return obs, reader, recorder
}

func TestOTelObserver_RecordsSpanAndMetrics(t *testing.T) {
	obs, reader, recorder := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{
		Component: "xrest",
		Operation: "Request",
		Kind:      KindClient,
		Attrs:     []Attr{{Key: "http.path", Value: "/rest/auth/login"}},
	})
	span.End(Result{})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Request", spans[0].Name())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := make([]string, 0, 2)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "conkit.operation.total")
	assert.Contains(t, names, "conkit.operation.duration")
}

func TestOTelObserver_EndIsIdempotent(t *testing.T) {
	obs, reader, _ := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{
		Component: "xrest",
		Operation: "Request",
	})
	span.End(Result{})
	span.End(Result{Err: errors.New("late")})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, m := range rm.ScopeMetrics[0].Metrics {
		if m.Name != "conkit.operation.total" {
			continue
		}
		sum, ok := m.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		var total int64
		for _, dp := range sum.DataPoints {
			total += dp.Value
		}
		assert.Equal(t, int64(1), total, "duplicate End must not double-count")
	}
}

func TestOTelObserver_ErrorStatus(t *testing.T) {
	obs, _, recorder := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{
		Component: "xpassport",
		Operation: "Login",
	})
	span.End(Result{Err: errors.New("captcha mismatch")})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEmpty(t, spans[0].Events(), "error should be recorded as span event")
}

func TestOTelObserver_DefaultsUnknownNames(t *testing.T) {
	obs, _, recorder := newTestObserver(t)

	_, span := obs.Start(context.Background(), SpanOptions{})
	span.End(Result{})

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "unknown", spans[0].Name())
}
