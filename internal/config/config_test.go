package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BRIDGE_ADDR", "BRIDGE_REQUEST_TIMEOUT", "BRIDGE_SHUTDOWN_TIMEOUT",
		"BRIDGE_ALLOWED_ORIGINS", "BRIDGE_MAX_REQUEST_BODY", "VOICEVOX_URL",
		"QIITA_BASE_URL", "ZENN_BASE_URL", "WEATHER_BASE_URL", "VERSION",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:17890", cfg.Addr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Contains(t, cfg.AllowedOrigins, "tauri://localhost")
	assert.Equal(t, "http://127.0.0.1:50021", cfg.Upstreams.VoicevoxURL)
	assert.Equal(t, "https://qiita.com", cfg.Upstreams.QiitaBaseURL)
	assert.Equal(t, "https://zenn.dev", cfg.Upstreams.ZennBaseURL)
	assert.Equal(t, "https://api.open-meteo.com", cfg.Upstreams.WeatherBaseURL)
	assert.Equal(t, "dev", cfg.Version)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIDGE_ADDR", "localhost:9000")
	t.Setenv("BRIDGE_REQUEST_TIMEOUT", "5s")
	t.Setenv("BRIDGE_ALLOWED_ORIGINS", "http://localhost:5173, tauri://localhost")
	t.Setenv("VOICEVOX_URL", "http://127.0.0.1:50121")
	t.Setenv("VERSION", "1.2.3")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "tauri://localhost"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://127.0.0.1:50121", cfg.Upstreams.VoicevoxURL)
	assert.Equal(t, "1.2.3", cfg.Version)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "bridge.yaml", `
addr: "[::1]:18000"
request_timeout: 45s
allowed_origins:
  - http://localhost:1420
upstreams:
  voicevox_url: http://127.0.0.1:50300
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "[::1]:18000", cfg.Addr)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:1420"}, cfg.AllowedOrigins)
	assert.Equal(t, "http://127.0.0.1:50300", cfg.Upstreams.VoicevoxURL)
	assert.Equal(t, "https://qiita.com", cfg.Upstreams.QiitaBaseURL, "unset keys keep defaults")
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIDGE_REQUEST_TIMEOUT", "20s")
	path := writeFile(t, "bridge.yaml", "request_timeout: 45s\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "bad.yaml", "addr: [unterminated\n"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", modify: func(*Config) {}},
		{name: "ipv6 loopback", modify: func(c *Config) { c.Addr = "[::1]:17890" }},
		{
			name:    "public interface",
			modify:  func(c *Config) { c.Addr = "0.0.0.0:17890" },
			wantErr: "must be a loopback address",
		},
		{
			name:    "hostname",
			modify:  func(c *Config) { c.Addr = "example.com:17890" },
			wantErr: "must be a loopback address",
		},
		{
			name:    "missing port",
			modify:  func(c *Config) { c.Addr = "127.0.0.1" },
			wantErr: "addr",
		},
		{
			name:    "timeout too short",
			modify:  func(c *Config) { c.RequestTimeout = 100 * time.Millisecond },
			wantErr: "request_timeout",
		},
		{
			name:    "zero shutdown timeout",
			modify:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: "shutdown_timeout",
		},
		{
			name:    "no origins",
			modify:  func(c *Config) { c.AllowedOrigins = nil },
			wantErr: "allowed_origins",
		},
		{
			name:    "tiny body limit",
			modify:  func(c *Config) { c.MaxRequestBody = 10 },
			wantErr: "max_request_body",
		},
		{
			name:    "bad upstream scheme",
			modify:  func(c *Config) { c.Upstreams.WeatherBaseURL = "ftp://api.open-meteo.com" },
			wantErr: "weather_base_url",
		},
		{
			name:    "upstream without host",
			modify:  func(c *Config) { c.Upstreams.VoicevoxURL = "http://" },
			wantErr: "voicevox_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("loads without overriding", func(t *testing.T) {
		t.Setenv("VOICEVOX_URL", "http://127.0.0.1:50021")
		t.Setenv("MASCOT_TEST_ONLY", "")
		require.NoError(t, os.Unsetenv("MASCOT_TEST_ONLY"))

		path := writeFile(t, ".env", "VOICEVOX_URL=http://127.0.0.1:9999\nMASCOT_TEST_ONLY=from-file\n")
		require.NoError(t, LoadDotEnv(path))

		assert.Equal(t, "http://127.0.0.1:50021", os.Getenv("VOICEVOX_URL"))
		assert.Equal(t, "from-file", os.Getenv("MASCOT_TEST_ONLY"))
	})
}
