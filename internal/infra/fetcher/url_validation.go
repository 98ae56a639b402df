package fetcher

import (
	"errors"
	"fmt"
	"net/url"

	"mascot-backend/internal/domain/entity"
)

// maxURLLength defines the maximum allowed length for outbound URLs.
const maxURLLength = 2048

var (
	errEmptyURL       = errors.New("URL is required")
	errURLTooLong     = fmt.Errorf("URL must not exceed %d characters", maxURLLength)
	errUnsupportedURL = errors.New("URL must use http or https scheme")
	errMissingHost    = errors.New("URL must have a valid host")
)

// validateURL checks that urlStr is an absolute http(s) URL.
// Loopback hosts are allowed: the speech engine listens on 127.0.0.1.
func validateURL(urlStr string) error {
	if urlStr == "" {
		return entity.NewError(entity.ErrInvalidInput, "validate url", errEmptyURL)
	}
	if len(urlStr) > maxURLLength {
		return entity.NewError(entity.ErrInvalidInput, "validate url", errURLTooLong)
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return entity.NewError(entity.ErrInvalidInput, "validate url", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return entity.NewError(entity.ErrInvalidInput, "validate url", errUnsupportedURL)
	}
	if u.Host == "" {
		return entity.NewError(entity.ErrInvalidInput, "validate url", errMissingHost)
	}
	return nil
}
