// Package desktop implements the commands that touch the user's desktop:
// opening links in the browser, choosing a mascot image and moving the
// mascot window.
package desktop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mascot-backend/internal/domain/entity"
)

// ImageExtensions are the file types offered by the mascot image picker.
var ImageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

var (
	errEmptyURL       = errors.New("url is required")
	errNoFileSelected = errors.New("no file selected")
	errEmptySelection = errors.New("picker returned an empty path")
)

// Opener hands a URL to the system's default handler.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Picker shows a native file chooser.
// It returns entity.ErrUserCancelled (possibly wrapped) when the user dismisses it.
type Picker interface {
	PickFile(ctx context.Context, title string, extensions []string) (string, error)
}

// Window reads and moves the mascot window in physical screen pixels.
type Window interface {
	Position(ctx context.Context) (Position, error)
	SetPosition(ctx context.Context, p Position) error
}

// Position is a window's outer top-left corner in physical pixels.
// It is encoded as a two-element JSON array [x, y].
type Position struct {
	X int32
	Y int32
}

// MarshalJSON encodes p as [x, y].
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int32{p.X, p.Y})
}

// UnmarshalJSON accepts [x, y] or {"x": .., "y": ..}.
func (p *Position) UnmarshalJSON(data []byte) error {
	var pair [2]int32
	if err := json.Unmarshal(data, &pair); err == nil {
		p.X, p.Y = pair[0], pair[1]
		return nil
	}
	var obj struct {
		X *int32 `json:"x"`
		Y *int32 `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("position must be [x, y] or {\"x\":..,\"y\":..}: %w", err)
	}
	if obj.X == nil || obj.Y == nil {
		return errors.New("position requires both x and y")
	}
	p.X, p.Y = *obj.X, *obj.Y
	return nil
}

// Service wires the desktop commands to their OS collaborators.
type Service struct {
	Opener Opener
	Picker Picker
	Window Window
}

// OpenURL opens url in the default browser.
func (s *Service) OpenURL(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return entity.NewError(entity.ErrInvalidInput, "open url", errEmptyURL)
	}
	if err := s.Opener.Open(ctx, url); err != nil {
		slog.WarnContext(ctx, "open url failed", slog.String("url", url), slog.Any("error", err))
		if entity.KindOf(err) != nil {
			return err
		}
		return fmt.Errorf("open url: %w", err)
	}
	slog.InfoContext(ctx, "opened url", slog.String("url", url))
	return nil
}

// SelectMascotImage asks the user for an image file and returns its absolute path.
func (s *Service) SelectMascotImage(ctx context.Context) (string, error) {
	path, err := s.Picker.PickFile(ctx, "Select mascot image", ImageExtensions)
	if errors.Is(err, entity.ErrUserCancelled) {
		return "", entity.NewError(entity.ErrUserCancelled, "select mascot image", errNoFileSelected)
	}
	if err != nil {
		return "", fmt.Errorf("select mascot image: %w", err)
	}
	if path == "" {
		return "", entity.NewError(entity.ErrUserCancelled, "select mascot image", errEmptySelection)
	}
	slog.InfoContext(ctx, "mascot image selected", slog.String("path", path))
	return path, nil
}

// WindowPosition returns the mascot window's current position.
func (s *Service) WindowPosition(ctx context.Context) (Position, error) {
	p, err := s.Window.Position(ctx)
	if err != nil {
		return Position{}, wrapWindowErr("get window position", err)
	}
	return p, nil
}

// SetWindowPosition moves the mascot window to p.
func (s *Service) SetWindowPosition(ctx context.Context, p Position) error {
	if err := s.Window.SetPosition(ctx, p); err != nil {
		return wrapWindowErr("set window position", err)
	}
	slog.DebugContext(ctx, "window moved", slog.Int("x", int(p.X)), slog.Int("y", int(p.Y)))
	return nil
}

func wrapWindowErr(op string, err error) error {
	if errors.Is(err, entity.ErrWindowUnavailable) {
		return err
	}
	return entity.NewError(entity.ErrWindowUnavailable, op, err)
}
