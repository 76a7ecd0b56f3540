package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/extract"
	"github.com/fwojciec/artex/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Pipeline    *extract.Pipeline
	Extractions artex.ExtractionService
	Metrics     *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"ARTEX_DB" type:"path" help:"History database path (default ~/.artex/artex.db)"`
	LogFile string `name:"log-file" env:"ARTEX_LOG" type:"path" help:"Also append log records to this file"`
	Verbose bool   `short:"v" help:"Log every strategy and recovery step"`

	Config ConfigFlags `embed:""`

	Parse   ParseCmd   `cmd:"" help:"Extract article text from one or more URLs"`
	Serve   ServeCmd   `cmd:"" help:"Serve extraction over HTTP"`
	History HistoryCmd `cmd:"" help:"List recent extractions"`
}

// ConfigFlags are the extraction settings shared by parse and serve.
type ConfigFlags struct {
	SafeMode          bool     `name:"safe-mode" env:"PARSER_SAFE_MODE" help:"Run only the primary parser"`
	EnableAMP         bool     `name:"amp" env:"PARSER_ENABLE_AMP" default:"true" negatable:"" help:"Try the AMP version of short articles"`
	EnableReadability bool     `name:"readability" env:"PARSER_ENABLE_READABILITY" default:"true" negatable:"" help:"Try the readability parser on short articles"`
	EnableRender      bool     `name:"render" env:"PARSER_ENABLE_PUPPETEER" help:"Render short articles in headless Chrome"`
	MinWords          int      `name:"min-words" env:"PARSER_WORDCOUNT_MIN" default:"${min_words}" help:"Word count below which fallbacks run"`
	AMPDomains        []string `name:"amp-domains" env:"PARSER_AMP_DOMAINS" help:"Hosts that always try AMP (default: Hearst titles)"`

	RecoverIntro       bool `name:"recover-intro" env:"PARSER_RECOVER_INTRO" default:"true" negatable:"" help:"Restore lede paragraphs"`
	RecoverCardHeaders bool `name:"recover-card-headers" env:"PARSER_RECOVER_CARD_HEADERS" default:"true" negatable:"" help:"Restore the first review card header"`
	SectionBlocks      bool `name:"section-blocks" env:"PARSER_SECTION_BLOCKS" default:"true" negatable:"" help:"Convert section blocks one at a time"`

	CardMarker   string `name:"card-marker" env:"PARSER_CARD_MARKER" default:"${card_marker}" help:"Pattern of the review section heading"`
	CardCategory string `name:"card-category" env:"PARSER_CARD_CATEGORY" default:"${card_category}" help:"Pattern of the product category noun"`

	Retries    int           `name:"retries" env:"ARTEX_RETRIES" default:"6" help:"Fetch retries after the first attempt"`
	RetryDelay time.Duration `name:"retry-delay" env:"ARTEX_RETRY_DELAY" default:"20s" help:"Pause between fetch attempts"`
	RateLimit  float64       `name:"rate-limit" env:"ARTEX_RATE_LIMIT" default:"1" help:"Requests per second per host; 0 disables"`
	ChromeBin  string        `name:"chrome-bin" env:"ARTEX_CHROME_BIN" help:"Chrome binary for --render"`
}

// Config converts the flags into an artex.Config.
func (f ConfigFlags) Config() (artex.Config, error) {
	card, err := artex.NewCardPattern(f.CardMarker, f.CardCategory)
	if err != nil {
		return artex.Config{}, err
	}
	if f.MinWords <= 0 {
		return artex.Config{}, artex.Errorf(artex.EINVALID, "min-words must be positive, got %d", f.MinWords)
	}

	domains := artex.DefaultAMPDomains
	if len(f.AMPDomains) > 0 {
		domains = nil
		for _, d := range f.AMPDomains {
			if d = strings.TrimSpace(d); d != "" {
				domains = append(domains, d)
			}
		}
	}

	return artex.Config{
		SafeMode:           f.SafeMode,
		EnableAMP:          f.EnableAMP,
		EnableReadability:  f.EnableReadability,
		EnableRender:       f.EnableRender,
		MinWords:           f.MinWords,
		AMPDomains:         domains,
		RecoverIntro:       f.RecoverIntro,
		RecoverCardHeaders: f.RecoverCardHeaders,
		SectionBlocks:      f.SectionBlocks,
		Card:               card,
	}, nil
}

func (f ConfigFlags) retryDelays() []time.Duration {
	delays := make([]time.Duration, max(f.Retries, 0))
	for i := range delays {
		delays[i] = f.RetryDelay
	}
	return delays
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	JSON        bool     `help:"Print results as JSON, one object per line"`
	Markdown    bool     `help:"Print Markdown instead of plain text"`
	Out         string   `type:"path" help:"Also write each article as a text file under this directory"`
	Concurrency int      `short:"c" default:"${concurrency}" help:"Concurrent extractions"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port    int           `env:"PORT" default:"3000" help:"Port to listen on"`
	Timeout time.Duration `default:"5m" help:"Per-request extraction timeout"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `help:"Only show extractions of this URL"`
	Limit int    `short:"n" default:"20" help:"Number of extractions to show"`
	Full  bool   `help:"Show the extracted text"`
}
