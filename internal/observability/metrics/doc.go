// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application metrics including:
//   - GUI command invocations (count, duration, result kind)
//   - Feed normalization (articles produced, fetch duration)
//   - Outbound HTTP calls and speech synthesis latency
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint of the command bridge.
//
// Example usage:
//
//	import "mascot-backend/internal/observability/metrics"
//
//	func fetch(ctx context.Context) {
//	    start := time.Now()
//	    articles, err := svc.FetchRSS(ctx, url)
//	    metrics.RecordFeedFetch("rss", time.Since(start), err)
//	    metrics.RecordArticlesNormalized("rss", len(articles))
//	}
package metrics
