package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"mascot-backend/internal/handler/http/pathutil"
)

func installRecorder(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return exporter, tp
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func newHandler(status int) http.Handler {
	paths := pathutil.NewNormalizer([]string{"/health"}, []string{"fetch_rss", "fetch_weather"})
	return Middleware(paths)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
}

func TestMiddleware_CreatesCommandSpan(t *testing.T) {
	exporter, tp := installRecorder(t)

	rr := httptest.NewRecorder()
	newHandler(http.StatusOK).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/invoke/fetch_rss", nil))

	require.NoError(t, tp.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /invoke/fetch_rss", spans[0].Name)
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "POST", attrs["http.request.method"].AsString())
	assert.Equal(t, "/invoke/fetch_rss", attrs["http.route"].AsString())
	assert.Equal(t, "fetch_rss", attrs[CommandKey].AsString())
	assert.Equal(t, int64(200), attrs["http.response.status_code"].AsInt64())
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
}

func TestMiddleware_UnknownCommandSharesSpanName(t *testing.T) {
	exporter, tp := installRecorder(t)

	h := newHandler(http.StatusNotFound)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/invoke/drop_tables", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/invoke/rm_rf", nil))

	require.NoError(t, tp.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	for _, s := range spans {
		assert.Equal(t, "POST /invoke/:unknown", s.Name)
		_, hasCommand := attrMap(s.Attributes)[CommandKey]
		assert.False(t, hasCommand)
		assert.Equal(t, codes.Unset, s.Status.Code, "4xx leaves status unset")
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	installRecorder(t)

	rr := httptest.NewRecorder()
	newHandler(http.StatusOK).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, rr.Header().Get("X-Trace-Id"), 32)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := installRecorder(t)
	prevProp := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prevProp) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	newHandler(http.StatusOK).ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, tp.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext.TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent.SpanID().String())
}

func TestMiddleware_MarksErrorStatusFor5xx(t *testing.T) {
	exporter, tp := installRecorder(t)

	newHandler(http.StatusBadGateway).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/invoke/fetch_weather", nil))

	require.NoError(t, tp.ForceFlush(context.Background()))
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "Bad Gateway", spans[0].Status.Description)
	assert.Equal(t, int64(502), attrMap(spans[0].Attributes)["http.response.status_code"].AsInt64())
}

func TestTraceID_NoSpanInContext(t *testing.T) {
	assert.Empty(t, TraceID(trace.SpanFromContext(context.Background())))
}
