// Package tracing provides OpenTelemetry tracing integration.
//
// Inbound command requests get a server span from Middleware; outbound calls
// (feed hosts, Open-Meteo, the speech engine) open client spans through
// GetTracer. No exporter is configured by default, so spans are only recorded
// when a TracerProvider is installed (tests use sdk/trace/tracetest).
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "speech.synthesize")
//	defer span.End()
package tracing
