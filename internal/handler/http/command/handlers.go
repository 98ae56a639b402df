package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/usecase/desktop"
)

func (h *Handler) fetchRSS(ctx context.Context, raw json.RawMessage) (reply, error) {
	var args struct {
		FeedURL *string `json:"feedUrl"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return reply{}, err
	}
	if err := requireArg("feedUrl", args.FeedURL); err != nil {
		return reply{}, err
	}
	articles, err := h.Articles.FetchRSS(ctx, *args.FeedURL)
	return reply{value: articles}, err
}

func (h *Handler) fetchQiita(ctx context.Context, raw json.RawMessage) (reply, error) {
	username, err := usernameArg(raw)
	if err != nil {
		return reply{}, err
	}
	articles, err := h.Articles.FetchQiita(ctx, username)
	return reply{value: articles}, err
}

func (h *Handler) fetchZenn(ctx context.Context, raw json.RawMessage) (reply, error) {
	username, err := usernameArg(raw)
	if err != nil {
		return reply{}, err
	}
	articles, err := h.Articles.FetchZenn(ctx, username)
	return reply{value: articles}, err
}

func (h *Handler) openURL(ctx context.Context, raw json.RawMessage) (reply, error) {
	var args struct {
		URL *string `json:"url"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return reply{}, err
	}
	if err := requireArg("url", args.URL); err != nil {
		return reply{}, err
	}
	return reply{}, h.Desktop.OpenURL(ctx, *args.URL)
}

func (h *Handler) selectMascotImage(ctx context.Context, _ json.RawMessage) (reply, error) {
	path, err := h.Desktop.SelectMascotImage(ctx)
	return reply{value: path}, err
}

func (h *Handler) getWindowPosition(ctx context.Context, _ json.RawMessage) (reply, error) {
	pos, err := h.Desktop.WindowPosition(ctx)
	return reply{value: pos}, err
}

func (h *Handler) setWindowPosition(ctx context.Context, raw json.RawMessage) (reply, error) {
	var args struct {
		X *int32 `json:"x"`
		Y *int32 `json:"y"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return reply{}, err
	}
	if err := requireArg("x", args.X); err != nil {
		return reply{}, err
	}
	if err := requireArg("y", args.Y); err != nil {
		return reply{}, err
	}
	return reply{}, h.Desktop.SetWindowPosition(ctx, desktop.Position{X: *args.X, Y: *args.Y})
}

func (h *Handler) synthesizeSpeech(ctx context.Context, raw json.RawMessage) (reply, error) {
	var args struct {
		Text      *string `json:"text"`
		SpeakerID *uint32 `json:"speakerId"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return reply{}, err
	}
	if err := requireArg("text", args.Text); err != nil {
		return reply{}, err
	}
	if err := requireArg("speakerId", args.SpeakerID); err != nil {
		return reply{}, err
	}
	audio, err := h.Speech.Synthesize(ctx, *args.Text, *args.SpeakerID)
	return reply{audio: audio}, err
}

func (h *Handler) fetchWeather(ctx context.Context, _ json.RawMessage) (reply, error) {
	doc, err := h.Weather.Current(ctx)
	return reply{value: doc}, err
}

func usernameArg(raw json.RawMessage) (string, error) {
	var args struct {
		Username *string `json:"username"`
	}
	if err := decodeArgs(raw, &args); err != nil {
		return "", err
	}
	if err := requireArg("username", args.Username); err != nil {
		return "", err
	}
	return *args.Username, nil
}

// decodeArgs unmarshals the argument object. An empty body means no arguments.
func decodeArgs(raw json.RawMessage, dst any) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return entity.NewError(entity.ErrInvalidInput, "decode arguments", err)
	}
	return nil
}

func requireArg[T any](name string, v *T) error {
	if v == nil {
		return entity.NewError(entity.ErrInvalidInput, "decode arguments", fmt.Errorf("missing required argument %s", name))
	}
	return nil
}
