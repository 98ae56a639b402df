// Package middleware holds HTTP middleware specific to the command bridge.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"mascot-backend/internal/handler/http/respond"
)

// DefaultAllowedOrigins are the origins a desktop webview shell loads its
// front end from, plus the usual dev-server origin.
var DefaultAllowedOrigins = []string{
	"tauri://localhost",
	"http://tauri.localhost",
	"https://tauri.localhost",
	"http://localhost:1420",
}

// OriginValidator decides whether a browser origin may call the bridge.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// Validator is the origin validation strategy.
	Validator OriginValidator

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Default: ["Content-Type", "X-Request-ID"]
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Default: 600
	MaxAge int

	// Logger receives rejected origins. Nil uses slog.Default().
	Logger *slog.Logger
}

// NewCORSConfig returns a config allowing origins with the default methods and headers.
func NewCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		Validator:      NewWhitelistValidator(origins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         600,
	}
}

// CORS returns middleware enforcing the origin whitelist.
//
// Behavior:
//   - No Origin header (CLI, curl, same-origin): pass through
//   - Origin not allowed: 403, the next handler is not called
//   - Allowed preflight (OPTIONS): 204 with Allow-Methods/Headers/Max-Age
//   - Allowed actual request: Access-Control-Allow-Origin echoes the origin
//
// Disallowed origins are rejected rather than merely left without headers,
// because a loopback service is reachable from any page the user visits and
// simple POSTs are not preflighted.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				respond.JSON(w, http.StatusForbidden, respond.ErrorBody{Error: "origin not allowed", Kind: "forbidden"})
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Trace-Id")
			next.ServeHTTP(w, r)
		})
	}
}
