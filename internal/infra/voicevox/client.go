// Package voicevox is a client for VOICEVOX-compatible text-to-speech engines
// running on the local machine.
package voicevox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/resilience/circuitbreaker"
	"mascot-backend/internal/usecase/speech"
)

// DefaultBaseURL is where a locally installed engine listens.
const DefaultBaseURL = "http://127.0.0.1:50021"

var errInvalidQuery = errors.New("engine returned invalid audio query JSON")

// Doer performs HTTP calls and returns the body of successful responses.
// *fetcher.HTTPClient satisfies it.
type Doer interface {
	Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error)
	Post(ctx context.Context, rawURL string, header http.Header, body []byte) ([]byte, error)
}

// Client talks to the engine's audio_query and synthesis endpoints.
// All calls share one circuit breaker so a stopped engine fails fast.
type Client struct {
	baseURL string
	http    Doer
	breaker *circuitbreaker.CircuitBreaker
}

var _ speech.Engine = (*Client)(nil)

// NewClient creates a Client for the engine at baseURL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, doer Doer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cfg := circuitbreaker.SpeechEngineConfig()
	cfg.IsFailure = func(err error) bool {
		// An engine answering 4xx/5xx is up; only unreachable engines trip the circuit.
		return errors.Is(err, entity.ErrNetwork)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		breaker: circuitbreaker.New(cfg),
	}
}

// AudioQuery builds synthesis parameters for text.
// The engine's JSON response is returned verbatim.
func (c *Client) AudioQuery(ctx context.Context, text string, speaker uint32) (speech.Query, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("speaker", strconv.FormatUint(uint64(speaker), 10))
	endpoint := c.baseURL + "/audio_query?" + params.Encode()

	body, err := c.call("audio query", func() ([]byte, error) {
		return c.http.Post(ctx, endpoint, jsonAccept(), nil)
	})
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, entity.NewError(entity.ErrParseFailed, "audio query", errInvalidQuery)
	}
	return speech.Query(body), nil
}

// Synthesize renders q to WAV audio.
func (c *Client) Synthesize(ctx context.Context, q speech.Query, speaker uint32) ([]byte, error) {
	endpoint := c.baseURL + "/synthesis?speaker=" + strconv.FormatUint(uint64(speaker), 10)
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "audio/wav")

	return c.call("synthesis", func() ([]byte, error) {
		return c.http.Post(ctx, endpoint, header, []byte(q))
	})
}

// Version returns the engine version string. It backs the bridge health check.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.call("engine version", func() ([]byte, error) {
		return c.http.Get(ctx, c.baseURL+"/version", jsonAccept())
	})
	if err != nil {
		return "", err
	}
	v := gjson.ParseBytes(body)
	if v.Type != gjson.String {
		return "", entity.NewError(entity.ErrParseFailed, "engine version", fmt.Errorf("unexpected version payload %q", v.Raw))
	}
	return v.String(), nil
}

// CircuitOpen reports whether calls are currently short-circuited.
func (c *Client) CircuitOpen() bool {
	return c.breaker.IsOpen()
}

// CircuitState returns the breaker state: "closed", "half-open" or "open".
func (c *Client) CircuitState() string {
	return c.breaker.State().String()
}

func (c *Client) call(op string, fn func() ([]byte, error)) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil, entity.NewError(entity.ErrNetwork, op, err)
	}
	if err != nil {
		return nil, err
	}
	body, _ := result.([]byte)
	return body, nil
}

func jsonAccept() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	return h
}
