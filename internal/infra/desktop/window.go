package desktop

import (
	"context"
	"errors"
	"sync"

	"mascot-backend/internal/domain/entity"
	usecase "mascot-backend/internal/usecase/desktop"
)

var errNotAttached = errors.New("mascot window has not reported its position yet")

// TrackedWindow mirrors the mascot window's position.
//
// The GUI shell owns the native window and reports every move through
// set_window_position; the bridge answers get_window_position from the last
// reported value. Until the first report the window counts as unavailable.
type TrackedWindow struct {
	mu       sync.RWMutex
	pos      usecase.Position
	attached bool
}

// NewTrackedWindow creates a TrackedWindow with no known position.
func NewTrackedWindow() *TrackedWindow {
	return &TrackedWindow{}
}

// Position returns the last reported position.
func (w *TrackedWindow) Position(ctx context.Context) (usecase.Position, error) {
	if err := ctx.Err(); err != nil {
		return usecase.Position{}, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.attached {
		return usecase.Position{}, entity.NewError(entity.ErrWindowUnavailable, "window position", errNotAttached)
	}
	return w.pos, nil
}

// SetPosition records p as the window's position.
func (w *TrackedWindow) SetPosition(ctx context.Context, p usecase.Position) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	w.pos = p
	w.attached = true
	w.mu.Unlock()
	return nil
}

// Attached reports whether a position has been reported.
func (w *TrackedWindow) Attached() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.attached
}
