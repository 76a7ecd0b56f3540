package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

var _ artex.Recoverer = (*LoggingRecoverer)(nil)

// LoggingRecoverer wraps a Recoverer and logs whether it changed the content.
type LoggingRecoverer struct {
	next   artex.Recoverer
	logger *slog.Logger
}

// NewLoggingRecoverer creates a new LoggingRecoverer.
func NewLoggingRecoverer(next artex.Recoverer, logger *slog.Logger) *LoggingRecoverer {
	return &LoggingRecoverer{next: next, logger: logger}
}

// Name delegates to the wrapped recoverer.
func (r *LoggingRecoverer) Name() string {
	return r.next.Name()
}

// Recover delegates to the wrapped recoverer.
func (r *LoggingRecoverer) Recover(page *artex.RawPage, content string) (out string, err error) {
	defer func(begin time.Time) {
		var url string
		if page != nil {
			url = page.URL
		}
		r.logger.Info("recover",
			"pass", r.next.Name(),
			"url", url,
			"changed", err == nil && out != content,
			"added", len(out)-len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Recover(page, content)
}
