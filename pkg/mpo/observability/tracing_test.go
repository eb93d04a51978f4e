package observability_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/chmike/mpo/pkg/mpo/observability"
)

// The global tracer provider is installed once for the whole test
// binary; each test resets the shared exporter instead.
var (
	traceExporter *tracetest.InMemoryExporter
	traceSetup    sync.Once
)

func newTraceRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	traceSetup.Do(func() {
		traceExporter = tracetest.NewInMemoryExporter()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(traceExporter)))
	})
	traceExporter.Reset()
	return traceExporter
}

func TestSpanManagerDrainAndDispatch(t *testing.T) {
	exporter := newTraceRecorder(t)
	sm := observability.NewSpanManager()

	ctx, drain := sm.StartDrainSpan(context.Background(), "mpo")
	_, dispatch := sm.StartDispatchSpan(ctx, "Ping::output", "Pong::input", "static")
	sm.EndSpanWithError(dispatch, nil)
	sm.EndSpanWithError(drain, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	// Spans export in end order: dispatch first.
	assert.Equal(t, "mpo.dispatch", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("slot", "Pong::input"))
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(),
		"dispatch is a child of the drain span")

	assert.Equal(t, "mpo.drain", spans[1].Name)
	assert.Contains(t, spans[1].Attributes, attribute.String("network", "mpo"))
}

func TestEndSpanWithError(t *testing.T) {
	exporter := newTraceRecorder(t)
	sm := observability.NewSpanManager()

	_, span := sm.StartDrainSpan(context.Background(), "mpo")
	sm.EndSpanWithError(span, errors.New("handler failed"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "handler failed", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1, "the error is recorded as an event")
}

func TestAddSpanEvent(t *testing.T) {
	exporter := newTraceRecorder(t)
	sm := observability.NewSpanManager()

	ctx, span := sm.StartDrainSpan(context.Background(), "mpo")
	sm.AddSpanEvent(ctx, "queue.purged", attribute.Int("removed", 3))
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "queue.purged", spans[0].Events[0].Name)
}
