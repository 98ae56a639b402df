// Package fetcher provides the outbound HTTP transport shared by every command.
// It enforces timeouts and response size limits and classifies failures into
// the entity error taxonomy (network, HTTP status, invalid input).
package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/observability/metrics"
	"mascot-backend/internal/observability/tracing"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBodyTooLarge     = errors.New("response body exceeds limit")
)

// maxErrorBodyLength caps how much of a failed response body is kept in errors.
const maxErrorBodyLength = 512

// HTTPClient performs GET and POST requests and returns the response body.
// It is safe for concurrent use.
type HTTPClient struct {
	client *http.Client
	config ClientConfig
}

// NewHTTPClient creates an HTTPClient with the given configuration.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	c := &HTTPClient{config: config}
	c.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= c.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", errTooManyRedirects, len(via))
			}
			return validateURL(req.URL.String())
		},
	}
	return c
}

// Get issues a GET request and returns the response body.
func (c *HTTPClient) Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, rawURL, header, nil)
}

// Post issues a POST request with body and returns the response body.
func (c *HTTPClient) Post(ctx context.Context, rawURL string, header http.Header, body []byte) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, rawURL, header, body)
}

// Do performs a request and returns the body of a 2xx response.
//
// Errors:
//   - entity.ErrInvalidInput: the URL is not an absolute http(s) URL
//   - entity.ErrNetwork: connection, timeout, redirect or body read failure
//   - entity.ErrHTTPStatus: the server answered with a non-2xx status
func (c *HTTPClient) Do(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, error) {
	op := method + " " + rawURL
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	host := hostOf(rawURL)

	ctx, span := tracing.GetTracer().Start(ctx, "http.client "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("server.address", host),
		))
	defer span.End()

	respBody, status, err := c.do(ctx, method, rawURL, header, body)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}

	switch {
	case err != nil:
		err = entity.NewError(entity.ErrNetwork, op, err)
	case status < 200 || status > 299:
		err = entity.NewStatusError(op, status, snippet(respBody))
	}

	metrics.RecordUpstreamRequest(host, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.DebugContext(ctx, "outbound request failed",
			slog.String("method", method),
			slog.String("host", host),
			slog.Int("status", status),
			slog.Any("error", err))
		return nil, err
	}
	return respBody, nil
}

func (c *HTTPClient) do(ctx context.Context, method, rawURL string, header http.Header, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" && c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return nil, 0, urlErr.Err
		}
		return nil, 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodySize+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(data)) > c.config.MaxBodySize {
		return nil, resp.StatusCode, fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, c.config.MaxBodySize)
	}
	return data, resp.StatusCode, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func snippet(body []byte) string {
	if len(body) > maxErrorBodyLength {
		body = body[:maxErrorBodyLength]
	}
	return string(bytes.ToValidUTF8(bytes.TrimSpace(body), nil))
}
