// Package respond provides utilities for sending HTTP responses from the bridge.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// ErrorBody is the JSON shape of every failed command.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
// A nil value is written as null.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// nil encodes as null so clients can always parse the body.
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; only logging is possible.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Binary writes data with the given content type.
func Binary(w http.ResponseWriter, code int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		slog.Default().Warn("failed to write binary response",
			slog.Int("status_code", code),
			slog.Int("bytes", len(data)),
			slog.Any("error", err))
	}
}

// Failure writes an ErrorBody.
func Failure(w http.ResponseWriter, code int, msg, kind string) {
	JSON(w, code, ErrorBody{Error: msg, Kind: kind})
}

// safeFragments mark error messages written for the user, not for developers.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"cannot be",
	"too long",
	"too large",
	"unknown command",
}

// SafeError writes err to the client only when it is a user-facing message and
// code is below 500. Everything else is logged (sanitized) and replaced with a
// generic "internal server error".
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	if code < 500 {
		lowerMsg := strings.ToLower(msg)
		for _, safe := range safeFragments {
			if strings.Contains(lowerMsg, safe) {
				isSafe = true
				break
			}
		}
	}

	if isSafe {
		Failure(w, code, msg, "")
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	Failure(w, code, "internal server error", "")
}
