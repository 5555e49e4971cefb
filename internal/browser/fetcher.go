package browser

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent identifies courtscan in plain HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Fetcher retrieves raw documents for the Static browser.
type Fetcher interface {
	// Fetch returns the body of url and the final URL after redirects.
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// HTTPFetcher fetches documents with a resty client.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher with the given request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", DefaultUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	return &HTTPFetcher{client: client}
}

// Fetch performs a GET request and rejects non-2xx responses.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if isTimeout(err) {
			return nil, "", fmt.Errorf("fetching %s: %w", url, ErrTimeout)
		}
		return nil, "", fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.IsError() {
		return nil, "", fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode())
	}

	final := url
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		final = raw.Request.URL.String()
	}

	return resp.Body(), final, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
