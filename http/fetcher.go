// Package http provides an HTTP-based implementation of artex.Fetcher
// for pages that render without JavaScript.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/artex"
)

const (
	// DefaultFetchTimeout is the default timeout for a single HTTP request.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxRedirects caps how many redirects a request follows.
	DefaultMaxRedirects = 10

	// UserAgent is sent with every request; several publishers refuse
	// requests that do not look like a desktop browser.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// browserHeaders are sent alongside the User-Agent.
var browserHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Ensure Fetcher implements artex.Fetcher at compile time.
var _ artex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over plain HTTP with browser-like headers.
// Unlike rod.Fetcher, it does not execute JavaScript.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets how many redirects are followed.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			setHeaders(req)
			return nil
		},
	}

	return f
}

// Fetch retrieves the page at url. Any status from 200 to 399 is accepted.
// The returned page carries the URL of the last request in the redirect chain.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*artex.RawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, artex.Errorf(artex.EINVALID, "invalid URL %q: %v", url, err)
	}
	setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, artex.Errorf(artex.EFETCH, "failed to fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusBadRequest {
		return nil, artex.Errorf(artex.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, artex.Errorf(artex.EFETCH, "failed to read %s: %v", url, err)
	}

	return &artex.RawPage{
		URL:  resp.Request.URL.String(),
		HTML: string(body),
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
}
