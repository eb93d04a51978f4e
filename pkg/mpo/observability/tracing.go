package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the mpo tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("mpo")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDrainSpan starts a span covering a full queue drain.
	StartDrainSpan(ctx context.Context, network string) (context.Context, trace.Span)

	// StartDispatchSpan starts a span for one handler invocation.
	// The dispatch span should be a child of the drain span.
	StartDispatchSpan(ctx context.Context, signal, slot, mode string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartDrainSpan starts a span covering a full queue drain.
func (m *otelSpanManager) StartDrainSpan(ctx context.Context, network string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mpo.drain",
		trace.WithAttributes(
			attribute.String("network", network),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDispatchSpan starts a span for one handler invocation.
func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, signal, slot, mode string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mpo.dispatch",
		trace.WithAttributes(
			attribute.String("signal", signal),
			attribute.String("slot", slot),
			attribute.String("mode", mode),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, recording the error if non-nil.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
