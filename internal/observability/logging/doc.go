// Package logging provides structured logging helpers built on log/slog.
//
// The bridge logs JSON to stdout; mascotctl logs text to stderr so command
// output on stdout stays clean. Both honor LOG_LEVEL.
package logging
