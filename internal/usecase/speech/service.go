// Package speech implements two-phase speech synthesis against a local
// text-to-speech engine: the engine first builds an audio query for the text,
// then renders that query to WAV audio.
package speech

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/observability/metrics"
)

var errEmptyText = errors.New("text is required")

// Query is the engine's synthesis parameters for one utterance.
// It is passed back to the engine unchanged.
type Query json.RawMessage

// Engine is a text-to-speech engine speaking the audio query / synthesis protocol.
type Engine interface {
	// AudioQuery asks the engine to build synthesis parameters for text.
	AudioQuery(ctx context.Context, text string, speaker uint32) (Query, error)
	// Synthesize renders q to WAV audio with the given voice.
	Synthesize(ctx context.Context, q Query, speaker uint32) ([]byte, error)
}

// Service runs speech synthesis requests.
type Service struct {
	Engine Engine
}

// NewService creates a Service backed by engine.
func NewService(engine Engine) *Service {
	return &Service{Engine: engine}
}

// Synthesize converts text to WAV audio spoken by speakerID.
// The audio query produced by the first phase is the body of the second
// phase; a failure in either phase aborts the request.
func (s *Service) Synthesize(ctx context.Context, text string, speakerID uint32) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entity.NewError(entity.ErrInvalidInput, "synthesize speech", errEmptyText)
	}

	start := time.Now()
	query, err := s.Engine.AudioQuery(ctx, text, speakerID)
	if err != nil {
		slog.WarnContext(ctx, "audio query failed",
			slog.Uint64("speaker_id", uint64(speakerID)),
			slog.Any("error", err))
		return nil, err
	}

	audio, err := s.Engine.Synthesize(ctx, query, speakerID)
	if err != nil {
		slog.WarnContext(ctx, "synthesis failed",
			slog.Uint64("speaker_id", uint64(speakerID)),
			slog.Any("error", err))
		return nil, err
	}

	duration := time.Since(start)
	metrics.RecordSpeechSynthesis(duration)
	slog.DebugContext(ctx, "speech synthesized",
		slog.Uint64("speaker_id", uint64(speakerID)),
		slog.Int("text_runes", len([]rune(text))),
		slog.Int("audio_bytes", len(audio)),
		slog.Duration("duration", duration))
	return audio, nil
}
