package tracing

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"mascot-backend/internal/handler/http/pathutil"
	"mascot-backend/internal/handler/http/responsewriter"
)

// CommandKey is the span attribute naming the invoked bridge command.
const CommandKey = attribute.Key("mascot.command")

// Middleware starts a server span for every bridge request.
//
// Spans are named "<method> <route>" where route is the normalized path, so
// unknown commands share the "/invoke/:unknown" name. A W3C traceparent from
// the webview continues its trace, and the trace ID is echoed in X-Trace-Id.
// 5xx responses set the span status to Error; 4xx are the caller's fault and
// leave it unset.
func Middleware(paths *pathutil.Normalizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			route := paths.NormalizePath(r.URL.Path)
			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRoute(route),
			}
			if name, ok := strings.CutPrefix(route, pathutil.InvokePrefix); ok && route != pathutil.UnknownCommand {
				attrs = append(attrs, CommandKey.String(name))
			}

			ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			if traceID := TraceID(span); traceID != "" {
				w.Header().Set("X-Trace-Id", traceID)
			}

			rw := responsewriter.Wrap(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			status := rw.StatusCode()
			span.SetAttributes(semconv.HTTPResponseStatusCode(status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}
