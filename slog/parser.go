package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/artex"
)

var _ artex.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser and logs each parse with its score.
type LoggingParser struct {
	next   artex.Parser
	logger *slog.Logger
	name   string
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next artex.Parser, name string, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger, name: name}
}

// Parse delegates to the wrapped parser.
func (p *LoggingParser) Parse(pageURL, html string) (c *artex.Candidate, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"parser", p.name,
			"url", pageURL,
			"bytes", len(html),
			"score", c.Score(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(pageURL, html)
}
