package extract

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/artex"
)

// sampleChars is how much of the final text is logged after each extraction.
const sampleChars = 500

// Pipeline runs one extraction request end to end.
type Pipeline struct {
	Fetcher     artex.Fetcher
	RateLimiter artex.DomainLimiter
	Runner      *Runner

	// Recoverers run in order on the winning content.
	Recoverers    []artex.Recoverer
	Reconstructor *Reconstructor

	// Markdown converts the recovered content when Markdown output is requested.
	Markdown artex.Converter

	// Writer, when set, records every non-empty extraction.
	Writer   artex.ExtractionWriter
	Observer artex.Observer
	Logger   *slog.Logger

	// RetryDelays are the pauses between fetch attempts; nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration
}

// ExtractOption configures a single Extract call.
type ExtractOption func(*extractOptions)

type extractOptions struct {
	markdown bool
}

// WithMarkdown also renders the content as Markdown into Result.Markdown.
func WithMarkdown() ExtractOption {
	return func(o *extractOptions) {
		o.markdown = true
	}
}

// ValidateURL parses rawURL and requires an absolute http or https URL.
func ValidateURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, artex.Errorf(artex.EINVALID, "URL is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, artex.Errorf(artex.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, artex.Errorf(artex.EINVALID, "URL must be absolute http(s): %q", rawURL)
	}
	return u, nil
}

// Extract fetches rawURL and returns its article text. A page without main
// content is not an error: the result has Empty set and carries whatever
// metadata the strategies found.
func (p *Pipeline) Extract(ctx context.Context, rawURL string, opts ...ExtractOption) (res *artex.Result, err error) {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}
	logger := p.logger()

	defer func() {
		if err != nil {
			logger.Error("extraction failed", "url", rawURL, "code", artex.ErrorCode(err), "err", err)
			if p.Observer != nil {
				p.Observer.ExtractionFailed(artex.ErrorCode(err))
			}
		}
	}()

	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	delays := retryDelays(p.RetryDelays)
	page, err := FetchWithRetryDelays(ctx, u.String(), p.Fetcher.Fetch, logFunc(logger), delays)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if artex.ErrorCode(err) == artex.EINVALID {
			return nil, err
		}
		return nil, artex.Errorf(artex.EFETCH, "failed to fetch %s after %d attempts: %v", u, len(delays)+1, err)
	}
	logger.Info("parse start", "url", page.URL, "bytes", len(page.HTML))

	best, err := p.Runner.Run(ctx, page)
	if err != nil {
		return nil, err
	}
	if p.Observer != nil {
		p.Observer.StrategySelected(best.Strategy)
	}

	if strings.TrimSpace(best.Content) == "" {
		logger.Warn("no main content", "url", page.URL, "strategy", best.Strategy)
		return &artex.Result{
			URL:    page.URL,
			Title:  orNotAvailable(best.Title),
			Author: orNotAvailable(best.Author),
			Empty:  true,
			Full:   best,
		}, nil
	}

	content := best.Content
	for _, rec := range p.Recoverers {
		out, err := rec.Recover(page, content)
		if err != nil {
			logger.Warn("recovery failed", "url", page.URL, "pass", rec.Name(), "err", err)
			continue
		}
		if out == content {
			continue
		}
		content = out
		logger.Info("recovered", "url", page.URL, "pass", rec.Name())
		if p.Observer != nil {
			p.Observer.RecoveryApplied(rec.Name())
		}
	}
	best.Content = content

	text, err := p.Reconstructor.Reconstruct(content)
	if err != nil {
		return nil, err
	}

	res = &artex.Result{
		URL:     page.URL,
		Content: text,
		Title:   orNotAvailable(best.Title),
		Author:  orNotAvailable(best.Author),
		Full:    best,
	}

	if o.markdown && p.Markdown != nil {
		md, err := p.Markdown.Convert(artex.SanitizeHTML(content))
		if err != nil {
			return nil, err
		}
		res.Markdown = md
	}

	if p.Writer != nil {
		if err := p.Writer.CreateExtraction(ctx, artex.NewExtraction(res)); err != nil {
			logger.Warn("failed to record extraction", "url", page.URL, "err", err)
		}
	}

	logger.Info("content sample", "url", page.URL, "strategy", best.Strategy, "sample", sample(text))
	return res, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}

// retryDelays returns delays, or the defaults when nil.
func retryDelays(delays []time.Duration) []time.Duration {
	if delays == nil {
		return DefaultRetryDelays()
	}
	return delays
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return artex.NotAvailable
	}
	return s
}

func sample(s string) string {
	if utf8.RuneCountInString(s) <= sampleChars {
		return s
	}
	return string([]rune(s)[:sampleChars])
}
