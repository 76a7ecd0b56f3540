package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

// Ensure LoggingFetcher implements artex.Fetcher.
var _ artex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   artex.Fetcher
	logger *slog.Logger
	name   string
}

// NewLoggingFetcher creates a new LoggingFetcher. name distinguishes
// fetchers in the log, e.g. "http" or "rod".
func NewLoggingFetcher(next artex.Fetcher, name string, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger, name: name}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *artex.RawPage, err error) {
	defer func(begin time.Time) {
		var final string
		var size int
		if page != nil {
			final = page.URL
			size = len(page.HTML)
		}
		f.logger.Info("fetch",
			"fetcher", f.name,
			"url", url,
			"final", final,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
