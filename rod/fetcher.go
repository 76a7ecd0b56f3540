package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/artex"
	"github.com/go-rod/rod/lib/proto"
)

const (
	// DefaultFetchTimeout bounds one render, navigation through scrolling.
	DefaultFetchTimeout = 60 * time.Second

	// DefaultScrollSteps is how many times the page is scrolled to the
	// bottom to trigger lazy-loaded sections.
	DefaultScrollSteps = 5

	// DefaultIdleWait is how long the page may stay idle before the
	// render is considered settled.
	DefaultIdleWait = 2 * time.Second

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const scrollJS = `() => { window.scrollTo(0, document.body.scrollHeight); return document.body.scrollHeight; }`

// Ensure Fetcher implements artex.Fetcher at compile time.
var _ artex.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in headless Chrome and returns the resulting DOM.
// It is the last-resort strategy for pages whose content is built by
// JavaScript. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	timeout     time.Duration
	scrollSteps int
	idleWait    time.Duration
	userAgent   string
	managerOpts []ManagerOption
	closed      atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithScrollSteps sets how many scroll-to-bottom passes are made.
func WithScrollSteps(n int) Option {
	return func(f *Fetcher) {
		f.scrollSteps = n
	}
}

// WithIdleWait sets how long network idleness is awaited after load.
func WithIdleWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.idleWait = d
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithManagerOptions configures the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher
// backed by it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		scrollSteps: DefaultScrollSteps,
		idleWait:    DefaultIdleWait,
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to url, lets the page settle, scrolls to load deferred
// content and returns the rendered HTML with the final URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*artex.RawPage, error) {
	if f.closed.Load() {
		return nil, artex.Errorf(artex.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser := f.manager.Browser()
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, artex.Errorf(artex.EFETCH, "failed to open page: %v", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
		return nil, renderError(ctx, url, err)
	}
	if err := page.Navigate(url); err != nil {
		return nil, renderError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, renderError(ctx, url, err)
	}

	for i := 0; i < f.scrollSteps; i++ {
		if _, err := page.Eval(scrollJS); err != nil {
			return nil, renderError(ctx, url, err)
		}
		if err := page.WaitIdle(f.idleWait); err != nil {
			return nil, renderError(ctx, url, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, renderError(ctx, url, err)
	}

	final := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		final = info.URL
	}

	return &artex.RawPage{URL: final, HTML: html}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// renderError keeps context errors intact so callers can tell a timeout
// from a failed render.
func renderError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return artex.Errorf(artex.EFETCH, "failed to render %s: %v", url, err)
}
