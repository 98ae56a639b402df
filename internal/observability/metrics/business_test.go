package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"mascot-backend/internal/domain/entity"
)

func TestResultLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: "success"},
		{name: "network", err: entity.NewError(entity.ErrNetwork, "op", nil), want: "network"},
		{name: "http status", err: entity.NewStatusError("op", 500, ""), want: "http_status"},
		{name: "parse", err: entity.NewError(entity.ErrParseFailed, "op", nil), want: "parse"},
		{name: "cancelled", err: entity.NewError(entity.ErrUserCancelled, "op", nil), want: "cancelled"},
		{name: "window", err: entity.NewError(entity.ErrWindowUnavailable, "op", nil), want: "window_unavailable"},
		{name: "invalid", err: entity.NewError(entity.ErrInvalidInput, "op", nil), want: "invalid_input"},
		{name: "unclassified", err: errors.New("boom"), want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultLabel(tt.err))
		})
	}
}

func TestRecordCommand(t *testing.T) {
	before := testutil.ToFloat64(CommandInvocationsTotal.WithLabelValues("fetch_rss", "success"))

	RecordCommand("fetch_rss", 20*time.Millisecond, nil)

	after := testutil.ToFloat64(CommandInvocationsTotal.WithLabelValues("fetch_rss", "success"))
	assert.Equal(t, before+1, after)
}

func TestRecordArticlesNormalized(t *testing.T) {
	before := testutil.ToFloat64(ArticlesNormalizedTotal.WithLabelValues("qiita"))

	RecordArticlesNormalized("qiita", 20)

	after := testutil.ToFloat64(ArticlesNormalizedTotal.WithLabelValues("qiita"))
	assert.Equal(t, before+20, after)
}

func TestRecordFeedFetch_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordFeedFetch("rss", time.Second, entity.NewError(entity.ErrParseFailed, "rss", nil))
		RecordUpstreamRequest("example.com", nil)
		RecordSpeechSynthesis(500 * time.Millisecond)
	})
}
