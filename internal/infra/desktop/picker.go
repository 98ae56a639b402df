package desktop

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ncruces/zenity"

	"mascot-backend/internal/domain/entity"
)

// DialogPicker shows the native file dialog through github.com/ncruces/zenity.
type DialogPicker struct {
	selectFile func(options ...zenity.Option) (string, error)
}

// NewDialogPicker creates a DialogPicker.
func NewDialogPicker() *DialogPicker {
	return &DialogPicker{selectFile: zenity.SelectFile}
}

// PickFile shows a single-file dialog restricted to extensions and returns
// the absolute path chosen. Dismissing the dialog yields entity.ErrUserCancelled.
func (p *DialogPicker) PickFile(ctx context.Context, title string, extensions []string) (string, error) {
	patterns := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		patterns = append(patterns, "*."+ext)
	}

	path, err := p.selectFile(
		zenity.Context(ctx),
		zenity.Title(title),
		zenity.FileFilters{{Name: "Images", Patterns: patterns}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", fmt.Errorf("file dialog: %w", entity.ErrUserCancelled)
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("file dialog: %w", entity.ErrUserCancelled)
	}
	return filepath.Abs(path)
}
