package metrics

import (
	"errors"
	"time"

	"mascot-backend/internal/domain/entity"
)

// ResultLabel maps an error to a low-cardinality label value.
// A nil error is "success"; classified errors use their kind; the rest are "error".
func ResultLabel(err error) string {
	if err == nil {
		return "success"
	}
	switch kind := entity.KindOf(err); {
	case errors.Is(kind, entity.ErrNetwork):
		return "network"
	case errors.Is(kind, entity.ErrHTTPStatus):
		return "http_status"
	case errors.Is(kind, entity.ErrParseFailed):
		return "parse"
	case errors.Is(kind, entity.ErrUserCancelled):
		return "cancelled"
	case errors.Is(kind, entity.ErrNotFound):
		return "not_found"
	case errors.Is(kind, entity.ErrWindowUnavailable):
		return "window_unavailable"
	case errors.Is(kind, entity.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

// RecordCommand records a single command invocation and its duration.
func RecordCommand(command string, duration time.Duration, err error) {
	CommandInvocationsTotal.WithLabelValues(command, ResultLabel(err)).Inc()
	CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordArticlesNormalized records the number of articles a pipeline produced.
func RecordArticlesNormalized(source string, count int) {
	ArticlesNormalizedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordFeedFetch records the duration of a fetch-then-normalize round trip.
func RecordFeedFetch(source string, duration time.Duration, err error) {
	FeedFetchDuration.WithLabelValues(source, ResultLabel(err)).Observe(duration.Seconds())
}

// RecordUpstreamRequest records one outbound HTTP call.
func RecordUpstreamRequest(host string, err error) {
	UpstreamRequestsTotal.WithLabelValues(host, ResultLabel(err)).Inc()
}

// RecordSpeechSynthesis records the duration of a successful synthesis.
func RecordSpeechSynthesis(duration time.Duration) {
	SpeechSynthesisDuration.Observe(duration.Seconds())
}
