package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"mascot-backend/internal/handler/http/requestid"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected slog.Level
	}{
		{name: "default is info", logLevel: "", expected: slog.LevelInfo},
		{name: "debug", logLevel: "debug", expected: slog.LevelDebug},
		{name: "upper case", logLevel: "DEBUG", expected: slog.LevelDebug},
		{name: "warn", logLevel: "warn", expected: slog.LevelWarn},
		{name: "warning alias", logLevel: "warning", expected: slog.LevelWarn},
		{name: "error", logLevel: "error", expected: slog.LevelError},
		{name: "invalid defaults to info", logLevel: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			assert.Equal(t, tt.expected, Level())
		})
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf)

	logger.Debug("hidden")
	logger.Info("bridge started", slog.String("addr", "127.0.0.1:17890"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "bridge started", entry["msg"])
	assert.Equal(t, "127.0.0.1:17890", entry["addr"])
	assert.NotContains(t, entry, "source")
}

func TestNewJSONLogger_DebugAddsSource(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf)

	logger.Debug("probe")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Contains(t, entry, "source")
}

func TestNewTextLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	var buf bytes.Buffer
	logger := NewTextLogger(&buf)

	logger.Warn("speech engine unreachable", slog.Int("speaker", 1))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="speech engine unreachable"`)
	assert.Contains(t, out, "speaker=1")
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger())
}

func TestWithRequestID(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	tests := []struct {
		name          string
		ctx           context.Context
		wantRequestID any
		wantTraceID   any
	}{
		{
			name: "empty context",
			ctx:  context.Background(),
		},
		{
			name:          "request id only",
			ctx:           requestid.WithRequestID(context.Background(), "req-123"),
			wantRequestID: "req-123",
		},
		{
			name:          "request id and trace",
			ctx:           trace.ContextWithSpanContext(requestid.WithRequestID(context.Background(), "req-456"), sc),
			wantRequestID: "req-456",
			wantTraceID:   "4bf92f3577b34da6a3ce929d0e0e4736",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.New(slog.NewJSONHandler(&buf, nil))

			WithRequestID(tt.ctx, base).Info("command completed")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantRequestID, entry["request_id"])
			assert.Equal(t, tt.wantTraceID, entry["trace_id"])
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("falls back to default", func(t *testing.T) {
		assert.Same(t, slog.Default(), FromContext(context.Background()))
	})

	t.Run("returns stored logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})
}
