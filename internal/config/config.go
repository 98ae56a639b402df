// Package config loads the bridge configuration.
//
// Values are resolved in order: built-in defaults, an optional YAML file, then
// environment variables (which may come from a .env file).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mascot-backend/internal/handler/http/middleware"
	"mascot-backend/internal/infra/voicevox"
	"mascot-backend/internal/usecase/fetch"
	"mascot-backend/internal/usecase/weather"
	envconfig "mascot-backend/pkg/config"
)

// DefaultAddr is the loopback address the bridge listens on.
const DefaultAddr = "127.0.0.1:17890"

// Config holds the bridge settings.
type Config struct {
	// Addr must resolve to a loopback interface.
	Addr string `yaml:"addr"`

	// RequestTimeout bounds every non-interactive command.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// AllowedOrigins lists the front-end origins accepted by CORS.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxRequestBody caps inbound request bodies in bytes.
	MaxRequestBody int64 `yaml:"max_request_body"`

	Upstreams Upstreams `yaml:"upstreams"`

	// Version is reported by /health.
	Version string `yaml:"-"`
}

// Upstreams are the remote hosts the commands talk to.
type Upstreams struct {
	VoicevoxURL    string `yaml:"voicevox_url"`
	QiitaBaseURL   string `yaml:"qiita_base_url"`
	ZennBaseURL    string `yaml:"zenn_base_url"`
	WeatherBaseURL string `yaml:"weather_base_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:            DefaultAddr,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		AllowedOrigins:  append([]string(nil), middleware.DefaultAllowedOrigins...),
		MaxRequestBody:  1 << 20,
		Upstreams: Upstreams{
			VoicevoxURL:    voicevox.DefaultBaseURL,
			QiitaBaseURL:   fetch.DefaultQiitaBaseURL,
			ZennBaseURL:    fetch.DefaultZennBaseURL,
			WeatherBaseURL: weather.DefaultBaseURL,
		},
		Version: "dev",
	}
}

// Load builds the configuration. path names an optional YAML file; an empty
// path skips it. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bridge configuration: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding the
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Debug("loaded environment file", slog.String("path", path))
	return nil
}

func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from a CLI flag or env var set by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = envconfig.GetEnvString("BRIDGE_ADDR", c.Addr)
	c.RequestTimeout = envconfig.GetEnvDuration("BRIDGE_REQUEST_TIMEOUT", c.RequestTimeout)
	c.ShutdownTimeout = envconfig.GetEnvDuration("BRIDGE_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.AllowedOrigins = envconfig.GetEnvStringList("BRIDGE_ALLOWED_ORIGINS", c.AllowedOrigins)
	c.MaxRequestBody = int64(envconfig.GetEnvInt("BRIDGE_MAX_REQUEST_BODY", int(c.MaxRequestBody)))
	c.Upstreams.VoicevoxURL = envconfig.GetEnvString("VOICEVOX_URL", c.Upstreams.VoicevoxURL)
	c.Upstreams.QiitaBaseURL = envconfig.GetEnvString("QIITA_BASE_URL", c.Upstreams.QiitaBaseURL)
	c.Upstreams.ZennBaseURL = envconfig.GetEnvString("ZENN_BASE_URL", c.Upstreams.ZennBaseURL)
	c.Upstreams.WeatherBaseURL = envconfig.GetEnvString("WEATHER_BASE_URL", c.Upstreams.WeatherBaseURL)
	c.Version = envconfig.GetEnvString("VERSION", c.Version)
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if err := validateLoopback(c.Addr); err != nil {
		return err
	}
	if err := envconfig.ValidateDurationRange(c.RequestTimeout, time.Second, 10*time.Minute); err != nil {
		return fmt.Errorf("request_timeout: %w", err)
	}
	if err := envconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown_timeout: %w", err)
	}
	if len(c.AllowedOrigins) == 0 {
		return errors.New("allowed_origins must not be empty")
	}
	if c.MaxRequestBody < 1024 {
		return fmt.Errorf("max_request_body must be at least 1024 bytes, got %d", c.MaxRequestBody)
	}

	for name, raw := range map[string]string{
		"voicevox_url":     c.Upstreams.VoicevoxURL,
		"qiita_base_url":   c.Upstreams.QiitaBaseURL,
		"zenn_base_url":    c.Upstreams.ZennBaseURL,
		"weather_base_url": c.Upstreams.WeatherBaseURL,
	} {
		if err := validateBaseURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// validateLoopback rejects listen addresses reachable from other hosts.
func validateLoopback(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("addr %q: %w", addr, err)
	}
	if port == "" {
		return fmt.Errorf("addr %q: port is required", addr)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("addr %q must be a loopback address", addr)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required, got %q", raw)
	}
	return nil
}
