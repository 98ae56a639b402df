package http

import (
	"context"
	"net/http"
	"time"

	"mascot-backend/internal/handler/http/respond"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of an individual health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "not_configured"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// EngineProber reports the version of the local speech engine.
type EngineProber interface {
	Version(ctx context.Context) (string, error)
}

// CircuitReporter is implemented by engines guarded by a circuit breaker.
type CircuitReporter interface {
	CircuitOpen() bool
	CircuitState() string
}

// WindowProber reports whether the GUI shell has attached its window.
type WindowProber interface {
	Attached() bool
}

// HealthHandler reports the bridge's own status and its local dependencies.
//
// The bridge keeps serving article and weather commands while the speech
// engine is down, so a failed dependency makes the status "degraded" and the
// response stays 200.
type HealthHandler struct {
	Version      string
	SpeechEngine EngineProber
	Window       WindowProber
	// ProbeTimeout bounds each dependency check. Default: 2s
	ProbeTimeout time.Duration
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.ProbeTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := map[string]CheckStatus{
		"speech_engine": h.checkSpeechEngine(ctx),
		"window":        h.checkWindow(),
	}

	status := "healthy"
	for _, c := range checks {
		if c.Status == "degraded" {
			status = "degraded"
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkSpeechEngine(ctx context.Context) CheckStatus {
	if h.SpeechEngine == nil {
		return CheckStatus{Status: "not_configured"}
	}
	details := map[string]any{}
	if cr, ok := h.SpeechEngine.(CircuitReporter); ok {
		details["circuit"] = cr.CircuitState()
		if cr.CircuitOpen() {
			// The probe would be rejected by the open circuit anyway.
			return CheckStatus{Status: "degraded", Message: "circuit breaker open", Details: details}
		}
	}

	start := time.Now()
	version, err := h.SpeechEngine.Version(ctx)
	details["latency_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		return CheckStatus{
			Status:  "degraded",
			Message: respond.SanitizeError(err),
			Details: details,
		}
	}
	details["version"] = version
	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkWindow() CheckStatus {
	if h.Window == nil {
		return CheckStatus{Status: "not_configured"}
	}
	if !h.Window.Attached() {
		// Not an error: the shell reports its position after its first move.
		return CheckStatus{Status: "healthy", Message: "window position not reported yet"}
	}
	return CheckStatus{Status: "healthy"}
}

// LiveHandler answers liveness probes without touching dependencies.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
}
