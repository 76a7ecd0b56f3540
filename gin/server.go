// Package gin serves extraction over HTTP.
package gin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/extract"
	"github.com/gin-gonic/gin"
)

// Server defaults.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 5 * time.Minute
	DefaultShutdownTimeout = 30 * time.Second
)

// Extractor runs a single extraction. *extract.Pipeline implements it.
type Extractor interface {
	Extract(ctx context.Context, rawURL string, opts ...extract.ExtractOption) (*artex.Result, error)
}

var _ Extractor = (*extract.Pipeline)(nil)

// Server exposes GET /parse, GET / and optionally GET /metrics.
type Server struct {
	router    *gin.Engine
	server    *http.Server
	extractor Extractor
	logger    *slog.Logger
	metrics   http.Handler
	timeout   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler serves h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithRequestTimeout bounds each extraction. Zero means no limit beyond
// the client's own.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, extractor Extractor, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{extractor: extractor, logger: logger}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(logger))
	router.Use(corsMiddleware())

	router.GET("/", s.handleIndex)
	router.GET("/parse", s.handleParse)
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics))
	}
	s.router = router

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("server listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting at most
// DefaultShutdownTimeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.String(http.StatusOK, "artex is running. Use /parse?url=your-article-url")
}

func (s *Server) handleParse(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	var opts []extract.ExtractOption
	if c.Query("format") == "markdown" {
		opts = append(opts, extract.WithMarkdown())
	}

	ctx := c.Request.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.extractor.Extract(ctx, rawURL, opts...)
	if err != nil {
		_ = c.Error(err)
		status, label := http.StatusInternalServerError, "Parsing error"
		if artex.ErrorCode(err) == artex.EINVALID {
			status, label = http.StatusBadRequest, "Invalid URL"
		}
		c.JSON(status, gin.H{
			"error":      label,
			"details":    err.Error(),
			"suggestion": artex.ErrorSuggestion(err),
		})
		return
	}

	if res.Empty {
		c.JSON(http.StatusOK, gin.H{
			"message":        artex.EmptyMessage,
			"fullResult":     res.Full,
			"possibleIssues": artex.EmptyPossibleIssues,
		})
		return
	}

	c.JSON(http.StatusOK, res)
}
