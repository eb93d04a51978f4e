package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records message routing metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records a message emission with its fan-out width.
	RecordEmit(ctx context.Context, signal string, fanout int)

	// RecordDispatch records a completed handler invocation.
	RecordDispatch(ctx context.Context, slot, mode string, duration time.Duration)

	// RecordDrop records a message dropped by the dynamic dispatch
	// path because of an incompatible runtime type.
	RecordDrop(ctx context.Context, slot string)

	// RecordPurge records queue entries removed by a link teardown.
	RecordPurge(ctx context.Context, removed int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emissions       metric.Int64Counter
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	drops           metric.Int64Counter
	purged          metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("mpo")

	emissions, err := meter.Int64Counter("mpo.messages.emitted",
		metric.WithDescription("Number of messages emitted on signals"),
	)
	if err != nil {
		return nil, err
	}

	dispatches, err := meter.Int64Counter("mpo.messages.dispatched",
		metric.WithDescription("Number of messages dispatched to slot handlers"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("mpo.dispatch.latency_ms",
		metric.WithDescription("Slot handler latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	drops, err := meter.Int64Counter("mpo.messages.dropped",
		metric.WithDescription("Number of messages dropped by dynamic dispatch"),
	)
	if err != nil {
		return nil, err
	}

	purged, err := meter.Int64Counter("mpo.queue.purged",
		metric.WithDescription("Number of queue entries purged by link teardown"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emissions:       emissions,
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		drops:           drops,
		purged:          purged,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records a message emission.
func (m *otelMetrics) RecordEmit(ctx context.Context, signal string, fanout int) {
	attrs := []attribute.KeyValue{
		attribute.String("signal", signal),
		attribute.Int("fanout", fanout),
	}
	m.emissions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordDispatch records a completed handler invocation.
func (m *otelMetrics) RecordDispatch(ctx context.Context, slot, mode string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("slot", slot),
		attribute.String("mode", mode),
	}
	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordDrop records a dynamic dispatch drop.
func (m *otelMetrics) RecordDrop(ctx context.Context, slot string) {
	m.drops.Add(ctx, 1, metric.WithAttributes(attribute.String("slot", slot)))
}

// RecordPurge records purged queue entries.
func (m *otelMetrics) RecordPurge(ctx context.Context, removed int) {
	if removed > 0 {
		m.purged.Add(ctx, int64(removed))
	}
}
