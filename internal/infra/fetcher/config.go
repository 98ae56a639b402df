package fetcher

import (
	"fmt"
	"time"

	"mascot-backend/pkg/config"
)

// ClientConfig holds the configuration for outbound HTTP calls.
//
// Every command makes at most two sequential outbound calls, so the timeout
// applies per call rather than per command.
type ClientConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced while reading, not based on Content-Length.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Default: 5
	MaxRedirects int

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the default configuration for outbound HTTP calls.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout:      10 * time.Second,
		MaxBodySize:  10 * 1024 * 1024,
		MaxRedirects: 5,
		UserAgent:    "MascotBackend/1.0",
	}
}

// Validate checks that the configuration values are usable.
//
// Validation rules:
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
func (c *ClientConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// Unset or malformed variables fall back to defaults; the result is validated.
//
// Environment variables:
//   - HTTP_CLIENT_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - HTTP_MAX_BODY_SIZE: integer in bytes (default: 10485760)
//   - HTTP_MAX_REDIRECTS: integer (default: 5)
//   - HTTP_USER_AGENT: string (default: MascotBackend/1.0)
func LoadConfigFromEnv() (ClientConfig, error) {
	def := DefaultConfig()
	cfg := ClientConfig{
		Timeout:      config.GetEnvDuration("HTTP_CLIENT_TIMEOUT", def.Timeout),
		MaxBodySize:  int64(config.GetEnvInt("HTTP_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects: config.GetEnvInt("HTTP_MAX_REDIRECTS", def.MaxRedirects),
		UserAgent:    config.GetEnvString("HTTP_USER_AGENT", def.UserAgent),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
