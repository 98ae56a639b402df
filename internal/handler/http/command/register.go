package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/handler/http/respond"
	"mascot-backend/internal/observability/logging"
	"mascot-backend/internal/observability/metrics"
)

// KindUnknownCommand is the error kind for names not in the command table.
const KindUnknownCommand = "unknown_command"

// maxArgsSize bounds the argument object of a single command.
const maxArgsSize = 1 << 20

// Handler dispatches commands to the use cases.
type Handler struct {
	Articles ArticleFetcher
	Speech   Synthesizer
	Weather  WeatherSource
	Desktop  Desktop
}

// Register installs one route per command on mux.
// Non-interactive commands are wrapped by timeout; a nil timeout leaves them unbounded.
func (h *Handler) Register(mux *http.ServeMux, timeout func(http.Handler) http.Handler) {
	for _, c := range commands {
		var handler http.Handler = h.serve(c)
		if timeout != nil && !c.interactive {
			handler = timeout(handler)
		}
		mux.Handle("POST /invoke/"+c.name, handler)
	}
	mux.HandleFunc("POST /invoke/{command}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("command")
		metrics.RecordCommand(KindUnknownCommand, 0, errUnknownCommand)
		respond.Failure(w, http.StatusNotFound, fmt.Sprintf("unknown command %q", name), KindUnknownCommand)
	})
}

var errUnknownCommand = errors.New("unknown command")

func (h *Handler) serve(c descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx).With(slog.String("command", c.name))

		start := time.Now()
		out, err := h.invoke(c, w, r)
		duration := time.Since(start)
		metrics.RecordCommand(c.name, duration, err)

		if err != nil {
			status, kind := classify(err)
			logger.WarnContext(ctx, "command failed",
				slog.String("kind", kind),
				slog.Int("status", status),
				slog.Duration("duration", duration),
				slog.String("error", respond.SanitizeError(err)))
			respond.Failure(w, status, DisplayMessage(c.failure, err), kind)
			return
		}

		logger.DebugContext(ctx, "command completed", slog.Duration("duration", duration))
		if out.audio != nil {
			respond.Binary(w, http.StatusOK, "audio/wav", out.audio)
			return
		}
		respond.JSON(w, http.StatusOK, out.value)
	}
}

func (h *Handler) invoke(c descriptor, w http.ResponseWriter, r *http.Request) (reply, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsSize))
	if err != nil {
		return reply{}, entity.NewError(entity.ErrInvalidInput, "read arguments", err)
	}
	return c.run(h, r.Context(), raw)
}

// classify maps an error to an HTTP status and the kind reported to the front end.
func classify(err error) (int, string) {
	kind := metrics.ResultLabel(err)
	switch entity.KindOf(err) {
	case entity.ErrNetwork, entity.ErrHTTPStatus, entity.ErrParseFailed:
		return http.StatusBadGateway, kind
	case entity.ErrInvalidInput:
		return http.StatusBadRequest, kind
	case entity.ErrUserCancelled:
		return http.StatusConflict, kind
	case entity.ErrWindowUnavailable:
		return http.StatusServiceUnavailable, kind
	case entity.ErrNotFound:
		return http.StatusNotFound, kind
	default:
		return http.StatusInternalServerError, kind
	}
}

// DisplayMessage renders err for the user as "<failure>: <cause>".
// A cancelled file dialog is reported as "No file selected".
func DisplayMessage(failure string, err error) string {
	if errors.Is(err, entity.ErrUserCancelled) {
		return "No file selected"
	}
	return failure + ": " + respond.SanitizeError(err)
}
