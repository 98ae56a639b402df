// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command metrics track GUI command invocations through the bridge
var (
	// CommandInvocationsTotal counts command invocations by command name and result kind
	CommandInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "command_invocations_total",
			Help: "Total number of GUI command invocations",
		},
		[]string{"command", "result"},
	)

	// CommandDuration measures command handling time in seconds
	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_duration_seconds",
			Help:    "GUI command duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"command"},
	)
)

// Feed metrics track the normalization pipelines
var (
	// ArticlesNormalizedTotal counts articles produced by each pipeline
	ArticlesNormalizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_normalized_total",
			Help: "Total number of articles produced by normalization",
		},
		[]string{"source"},
	)

	// FeedFetchDuration measures fetch-then-normalize duration per source
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to fetch and normalize a feed",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"source", "status"},
	)
)

// Upstream metrics track outbound calls to remote services
var (
	// UpstreamRequestsTotal counts outbound HTTP calls by host and result kind
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of outbound HTTP requests",
		},
		[]string{"host", "result"},
	)

	// SpeechSynthesisDuration measures the full two-phase synthesis time
	SpeechSynthesisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "speech_synthesis_duration_seconds",
			Help:    "Time taken to synthesize speech (query and synthesis)",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)
)
