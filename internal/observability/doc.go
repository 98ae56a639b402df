// Package observability groups the bridge's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog construction and request-scoped attributes
//   - metrics: Prometheus collectors for commands and upstream calls
//   - tracing: OpenTelemetry spans for inbound and outbound HTTP
package observability
