// Package extract orchestrates article extraction: fetching with retry,
// choosing the richest strategy, recovering dropped content and reducing
// the winner to plain text.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
)

// Runner tries extraction strategies in order and keeps the richest
// candidate. Fallbacks only run while the best score is below the
// configured threshold, except AMP for allow-listed hosts.
type Runner struct {
	Primary     artex.Parser
	Readability artex.Parser

	// Fetcher retrieves AMP variants. Renderer, when set, renders pages
	// in a headless browser.
	Fetcher  artex.Fetcher
	Renderer artex.Fetcher

	Config      artex.Config
	Logger      *slog.Logger
	RetryDelays []time.Duration
}

// Run returns the best candidate for page. Only a primary parser failure
// is fatal; fallback failures are logged and skipped.
func (r *Runner) Run(ctx context.Context, page *artex.RawPage) (*artex.Candidate, error) {
	logger := r.logger()

	best, err := r.Primary.Parse(page.URL, page.HTML)
	if err != nil {
		return nil, artex.Errorf(artex.EPARSE, "primary parser failed for %s: %v", page.URL, err)
	}
	if best == nil {
		best = &artex.Candidate{}
	}
	best.Strategy = artex.StrategyPrimary
	logger.Info("strategy", "url", page.URL, "strategy", best.Strategy, "score", best.Score())

	if r.Config.SafeMode {
		return best, nil
	}

	threshold := r.Config.Threshold()

	if r.Config.EnableAMP && r.Fetcher != nil && (r.Config.NeedsAMP(hostname(page.URL)) || best.Score() < threshold) {
		best = r.adopt(best, r.amp(ctx, page), logger)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.Config.EnableReadability && r.Readability != nil && best.Score() < threshold {
		best = r.adopt(best, r.readability(page), logger)
	}

	if r.Config.EnableRender && r.Renderer != nil && best.Score() < threshold {
		best = r.adopt(best, r.rendered(ctx, page), logger)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return best, nil
}

// adopt returns c when it strictly beats best, filling a missing title or
// author from best; otherwise best.
func (r *Runner) adopt(best, c *artex.Candidate, logger *slog.Logger) *artex.Candidate {
	if c == nil {
		return best
	}
	adopted := c.Better(best)
	logger.Info("strategy",
		"strategy", c.Strategy,
		"score", c.Score(),
		"best", best.Score(),
		"adopted", adopted,
	)
	if !adopted {
		return best
	}
	if c.Title == "" {
		c.Title = best.Title
	}
	if c.Author == "" {
		c.Author = best.Author
	}
	return c
}

func (r *Runner) amp(ctx context.Context, page *artex.RawPage) *artex.Candidate {
	logger := r.logger()

	ampURL, err := goquery.FindAMPURL(page.HTML, page.URL)
	if err != nil {
		logger.Warn("amp lookup failed", "url", page.URL, "err", err)
		return nil
	}

	fetched, err := FetchWithRetryDelays(ctx, ampURL, r.Fetcher.Fetch, logFunc(logger), retryDelays(r.RetryDelays))
	if err != nil {
		logger.Warn("amp fetch failed", "url", ampURL, "err", err)
		return nil
	}

	c, err := r.Primary.Parse(fetched.URL, fetched.HTML)
	if err != nil {
		logger.Warn("amp parse failed", "url", ampURL, "err", err)
		return nil
	}
	if c != nil {
		c.Strategy = artex.StrategyAMP
	}
	return c
}

func (r *Runner) readability(page *artex.RawPage) *artex.Candidate {
	c, err := r.Readability.Parse(page.URL, page.HTML)
	if err != nil {
		r.logger().Warn("readability failed", "url", page.URL, "err", err)
		return nil
	}
	if c != nil {
		c.Strategy = artex.StrategyReadability
	}
	return c
}

func (r *Runner) rendered(ctx context.Context, page *artex.RawPage) *artex.Candidate {
	logger := r.logger()

	rendered, err := r.Renderer.Fetch(ctx, page.URL)
	if err != nil {
		logger.Warn("render failed", "url", page.URL, "err", err)
		return nil
	}

	c, err := r.Primary.Parse(rendered.URL, rendered.HTML)
	if err != nil {
		logger.Warn("rendered parse failed", "url", page.URL, "err", err)
		return nil
	}
	if c != nil {
		c.Strategy = artex.StrategyRendered
	}
	return c
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func logFunc(logger *slog.Logger) LogFunc {
	return func(format string, args ...any) {
		logger.Warn("retrying fetch", "detail", fmt.Sprintf(format, args...))
	}
}

func hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
