// Package command exposes the mascot's native commands over HTTP.
//
// Every command is POST /invoke/{name} with a JSON object of camelCase
// arguments. Success returns the command's JSON value (audio/wav bytes for
// synthesize_speech). Failure returns {"error": display message, "kind": kind}.
package command

import (
	"context"
	"encoding/json"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/usecase/desktop"
)

// Command names as invoked by the front end.
const (
	FetchRSS          = "fetch_rss"
	OpenURL           = "open_url"
	SelectMascotImage = "select_mascot_image"
	GetWindowPosition = "get_window_position"
	SetWindowPosition = "set_window_position"
	SynthesizeSpeech  = "synthesize_speech"
	FetchWeather      = "fetch_weather"
	FetchQiita        = "fetch_qiita_articles"
	FetchZenn         = "fetch_zenn_articles"
)

// ArticleFetcher loads normalized articles from each source.
type ArticleFetcher interface {
	FetchRSS(ctx context.Context, feedURL string) ([]entity.Article, error)
	FetchQiita(ctx context.Context, username string) ([]entity.Article, error)
	FetchZenn(ctx context.Context, username string) ([]entity.Article, error)
}

// Synthesizer turns text into WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, speakerID uint32) ([]byte, error)
}

// WeatherSource returns the current weather document.
type WeatherSource interface {
	Current(ctx context.Context) (json.RawMessage, error)
}

// Desktop performs the OS-facing commands.
type Desktop interface {
	OpenURL(ctx context.Context, url string) error
	SelectMascotImage(ctx context.Context) (string, error)
	WindowPosition(ctx context.Context) (desktop.Position, error)
	SetWindowPosition(ctx context.Context, p desktop.Position) error
}

// reply is a command's successful result: a JSON value or raw audio.
type reply struct {
	value any
	audio []byte
}

// descriptor describes one command.
type descriptor struct {
	name string
	// failure prefixes the error shown to the user, e.g. "Failed to fetch RSS".
	failure string
	// interactive commands wait on the user and are not bound by the request timeout.
	interactive bool
	run         func(h *Handler, ctx context.Context, args json.RawMessage) (reply, error)
}

var commands = []descriptor{
	{name: FetchRSS, failure: "Failed to fetch RSS", run: (*Handler).fetchRSS},
	{name: OpenURL, failure: "Failed to open URL", run: (*Handler).openURL},
	{name: SelectMascotImage, failure: "Failed to select mascot image", interactive: true, run: (*Handler).selectMascotImage},
	{name: GetWindowPosition, failure: "Failed to get window position", run: (*Handler).getWindowPosition},
	{name: SetWindowPosition, failure: "Failed to set window position", run: (*Handler).setWindowPosition},
	{name: SynthesizeSpeech, failure: "Failed to synthesize speech", run: (*Handler).synthesizeSpeech},
	{name: FetchWeather, failure: "Failed to fetch weather", run: (*Handler).fetchWeather},
	{name: FetchQiita, failure: "Failed to fetch Qiita articles", run: (*Handler).fetchQiita},
	{name: FetchZenn, failure: "Failed to fetch Zenn articles", run: (*Handler).fetchZenn},
}

// Names returns every command name in registration order.
func Names() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return names
}
