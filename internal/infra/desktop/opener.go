// Package desktop adapts operating-system facilities (default browser, native
// file dialogs, the mascot window) to the desktop use case interfaces.
package desktop

import (
	"context"
	"io"

	"github.com/pkg/browser"
)

func init() {
	// The bridge's stdout carries JSON logs; keep xdg-open chatter out of it.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// BrowserOpener opens URLs with the platform's default handler
// (open on macOS, xdg-open on Linux, rundll32 on Windows).
type BrowserOpener struct {
	open func(url string) error
}

// NewBrowserOpener creates a BrowserOpener backed by github.com/pkg/browser.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{open: browser.OpenURL}
}

// Open launches url. The launcher is started asynchronously by the OS; ctx is
// only checked before launching.
func (o *BrowserOpener) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.open(url)
}
