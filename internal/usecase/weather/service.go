// Package weather proxies the current Tokyo weather from Open-Meteo and maps
// WMO weather codes to the labels the mascot speaks.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"mascot-backend/internal/domain/entity"
)

// DefaultBaseURL is the Open-Meteo API host.
const DefaultBaseURL = "https://api.open-meteo.com"

// Tokyo coordinates used for every forecast request.
const (
	Latitude  = "35.6895"
	Longitude = "139.6917"
	Timezone  = "Asia/Tokyo"
)

var errInvalidJSON = errors.New("response is not valid JSON")

// Transport supplies raw response bytes for a GET request.
type Transport interface {
	Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error)
}

// Service fetches current conditions.
type Service struct {
	Transport Transport
	BaseURL   string
}

// NewService creates a Service against the public Open-Meteo host.
func NewService(transport Transport) *Service {
	return &Service{Transport: transport, BaseURL: DefaultBaseURL}
}

// ForecastURL returns the forecast request URL under base.
func ForecastURL(base string) string {
	params := url.Values{}
	params.Set("latitude", Latitude)
	params.Set("longitude", Longitude)
	params.Set("current", "temperature_2m,weathercode")
	params.Set("timezone", Timezone)
	return strings.TrimRight(base, "/") + "/v1/forecast?" + params.Encode()
}

// Current returns the Open-Meteo response for Tokyo unchanged.
// The front end reads current.temperature_2m and current.weathercode from it.
func (s *Service) Current(ctx context.Context) (json.RawMessage, error) {
	header := http.Header{}
	header.Set("Accept", "application/json")

	raw, err := s.Transport.Get(ctx, ForecastURL(s.BaseURL), header)
	if err != nil {
		slog.WarnContext(ctx, "weather fetch failed", slog.Any("error", err))
		return nil, err
	}
	if !gjson.ValidBytes(raw) {
		return nil, entity.NewError(entity.ErrParseFailed, "fetch weather", errInvalidJSON)
	}
	return json.RawMessage(raw), nil
}
