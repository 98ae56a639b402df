package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/observability/metrics"
)

const (
	// DefaultQiitaBaseURL is the public Qiita API host.
	DefaultQiitaBaseURL = "https://qiita.com"

	// DefaultZennBaseURL is the host serving per-user Zenn feeds.
	DefaultZennBaseURL = "https://zenn.dev"
)

// Transport supplies raw response bytes for a GET request.
// Implementations report failures as *entity.CommandError values.
type Transport interface {
	Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error)
}

// Service provides the fetch-then-normalize use cases for every article source.
// It holds no mutable state; concurrent calls are independent.
type Service struct {
	Transport    Transport
	QiitaBaseURL string
	ZennBaseURL  string
}

// NewService creates a Service with the public Qiita and Zenn hosts.
func NewService(transport Transport) *Service {
	return &Service{
		Transport:    transport,
		QiitaBaseURL: DefaultQiitaBaseURL,
		ZennBaseURL:  DefaultZennBaseURL,
	}
}

// FetchRSS downloads feedURL and normalizes it with NormalizeRSS.
func (s *Service) FetchRSS(ctx context.Context, feedURL string) ([]entity.Article, error) {
	return s.run(ctx, "rss", func() ([]entity.Article, error) {
		raw, err := s.Transport.Get(ctx, feedURL, acceptHeader("application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8"))
		if err != nil {
			return nil, err
		}
		return NormalizeRSS(raw)
	}, slog.String("url", feedURL))
}

// FetchQiita fetches the latest items posted by username from the Qiita API.
func (s *Service) FetchQiita(ctx context.Context, username string) ([]entity.Article, error) {
	endpoint := fmt.Sprintf("%s/api/v2/users/%s/items?per_page=%d",
		strings.TrimRight(s.QiitaBaseURL, "/"), url.PathEscape(username), MaxQiitaArticles)

	return s.run(ctx, "qiita", func() ([]entity.Article, error) {
		raw, err := s.Transport.Get(ctx, endpoint, acceptHeader("application/json"))
		if err != nil {
			return nil, err
		}
		return NormalizeQiita(raw)
	}, slog.String("username", username))
}

// FetchZenn fetches the Zenn feed of username through the RSS pipeline.
// The username is inserted into the feed URL verbatim.
func (s *Service) FetchZenn(ctx context.Context, username string) ([]entity.Article, error) {
	return s.FetchRSS(ctx, ZennFeedURL(s.ZennBaseURL, username))
}

// ZennFeedURL returns the per-user feed URL under base.
func ZennFeedURL(base, username string) string {
	return strings.TrimRight(base, "/") + "/" + username + "/feed"
}

func (s *Service) run(ctx context.Context, source string, fn func() ([]entity.Article, error), attrs ...any) ([]entity.Article, error) {
	start := time.Now()
	articles, err := fn()
	duration := time.Since(start)
	metrics.RecordFeedFetch(source, duration, err)

	logger := slog.Default().With(attrs...)
	if err != nil {
		logger.WarnContext(ctx, "article fetch failed",
			slog.String("source", source),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, err
	}

	metrics.RecordArticlesNormalized(source, len(articles))
	logger.InfoContext(ctx, "articles fetched",
		slog.String("source", source),
		slog.Int("count", len(articles)),
		slog.Duration("duration", duration))
	return articles, nil
}

func acceptHeader(v string) http.Header {
	h := make(http.Header)
	h.Set("Accept", v)
	return h
}
