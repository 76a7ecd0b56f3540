package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/extract"
	"github.com/fwojciec/artex/fs"
	"github.com/fwojciec/artex/goquery"
	"github.com/fwojciec/artex/htmltomarkdown"
	"github.com/fwojciec/artex/htmltotext"
	arthttp "github.com/fwojciec/artex/http"
	"github.com/fwojciec/artex/prometheus"
	"github.com/fwojciec/artex/readability"
	"github.com/fwojciec/artex/rod"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/fwojciec/artex/sqlite"
	"github.com/fwojciec/artex/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment and flags still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	Logger  *artexslog.Logger
	Metrics *prometheus.Metrics

	// Services for end-to-end testing.
	ExtractionService artex.ExtractionService

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if m.Logger != nil {
		if err := m.Logger.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("artex"),
		kong.Description("Extract the readable text of article pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"card_marker":   artex.DefaultCardMarker,
			"card_category": artex.DefaultCardCategory,
			"min_words":     fmt.Sprint(artex.DefaultMinWords),
			"concurrency":   fmt.Sprint(extract.DefaultConcurrency),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'artex --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose || cmd == "serve" {
		level = slog.LevelInfo
	}
	if m.Logger, err = artexslog.NewLogger(stderr, cli.LogFile, level); err != nil {
		return err
	}
	deps.Logger = m.Logger.Logger
	defer m.Close()

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ARTEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}

	m.ExtractionService = sqlite.NewExtractionService(m.DB)
	deps.Extractions = m.ExtractionService

	if cmd == "parse" || cmd == "serve" {
		cfg, err := cli.Config.Config()
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", artex.ErrorMessage(err))
			return err
		}

		m.Metrics = prometheus.NewMetrics()
		deps.Metrics = m.Metrics

		writer := artex.ExtractionWriter(m.ExtractionService)
		if cmd == "parse" && cli.Parse.Out != "" {
			writer = artex.MultiWriter(writer, fs.NewWriter(cli.Parse.Out))
		}

		deps.Pipeline = m.buildPipeline(cfg, cli.Config, writer, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// buildPipeline wires the extraction pipeline for cfg.
func (m *Main) buildPipeline(cfg artex.Config, flags ConfigFlags, writer artex.ExtractionWriter, logger *slog.Logger) *extract.Pipeline {
	fetcher := artexslog.NewLoggingFetcher(arthttp.NewFetcher(), "http", logger)
	m.closers = append(m.closers, fetcher.Close)

	runner := &extract.Runner{
		Primary:     artexslog.NewLoggingParser(trafilatura.NewParser(), "trafilatura", logger),
		Readability: artexslog.NewLoggingParser(readability.NewParser(), "readability", logger),
		Fetcher:     fetcher,
		Config:      cfg,
		Logger:      logger,
		RetryDelays: flags.retryDelays(),
	}

	if cfg.EnableRender && !cfg.SafeMode {
		var opts []rod.ManagerOption
		if flags.ChromeBin != "" {
			opts = append(opts, rod.WithBrowserBin(flags.ChromeBin))
		}
		rf, err := rod.NewFetcher(rod.WithManagerOptions(opts...))
		if err != nil {
			logger.Warn("rendered strategy disabled: failed to start browser", "err", err)
		} else {
			renderer := artexslog.NewLoggingFetcher(rf, "rod", logger)
			m.closers = append(m.closers, renderer.Close)
			runner.Renderer = renderer
		}
	}

	var recoverers []artex.Recoverer
	if cfg.RecoverIntro {
		recoverers = append(recoverers, artexslog.NewLoggingRecoverer(goquery.NewIntroRecovery(), logger))
	}
	if cfg.RecoverCardHeaders {
		recoverers = append(recoverers, artexslog.NewLoggingRecoverer(goquery.NewCardRecovery(cfg.Card), logger))
	}

	return &extract.Pipeline{
		Fetcher:       fetcher,
		RateLimiter:   extract.NewDomainLimiter(flags.RateLimit, 1),
		Runner:        runner,
		Recoverers:    recoverers,
		Reconstructor: extract.NewReconstructor(htmltotext.NewConverter(), cfg.SectionBlocks),
		Markdown:      htmltomarkdown.NewConverter(),
		Writer:        writer,
		Observer:      m.Metrics,
		Logger:        logger,
		RetryDelays:   flags.retryDelays(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "artex.db"
	}
	dir := filepath.Join(home, ".artex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "artex.db")
}
