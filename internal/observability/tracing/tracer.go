package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by the mascot backend.
const InstrumentationName = "mascot-backend"

// GetTracer returns the tracer for creating spans.
// The tracer is resolved from the global provider on every call so a provider
// installed after startup (or in tests) takes effect immediately.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(InstrumentationName)
}

// TraceID returns the hex trace ID of the span in ctx, or "" when none is recording.
func TraceID(span trace.Span) string {
	sc := span.SpanContext()
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
