package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/mock"
	artexslog "github.com/fwojciec/artex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs parser name and score", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseFn: func(pageURL, html string) (*artex.Candidate, error) {
				return &artex.Candidate{Content: "<p>three short words</p>"}, nil
			},
		}

		p := artexslog.NewLoggingParser(inner, "trafilatura", logger)
		c, err := p.Parse("https://example.com/story", "<html></html>")

		require.NoError(t, err)
		assert.Equal(t, 3, c.Score())
		output := buf.String()
		assert.Contains(t, output, "msg=parse")
		assert.Contains(t, output, "parser=trafilatura")
		assert.Contains(t, output, "score=3")
		assert.Contains(t, output, "bytes=13")
	})

	t.Run("logs error with zero score", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Parser{
			ParseFn: func(pageURL, html string) (*artex.Candidate, error) {
				return nil, errors.New("bad markup")
			},
		}

		p := artexslog.NewLoggingParser(inner, "readability", logger)
		_, err := p.Parse("https://example.com/story", "<html>")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "score=0")
		assert.Contains(t, output, "err=\"bad markup\"")
	})
}

func TestLoggingRecoverer_Recover(t *testing.T) {
	t.Parallel()

	t.Run("logs whether content changed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Recoverer{
			NameFn: func() string { return "intro" },
			RecoverFn: func(page *artex.RawPage, content string) (string, error) {
				return "<p>Lede</p>\n" + content, nil
			},
		}

		r := artexslog.NewLoggingRecoverer(inner, logger)
		out, err := r.Recover(&artex.RawPage{URL: "https://example.com/story"}, "<p>Body</p>")

		require.NoError(t, err)
		assert.Equal(t, "<p>Lede</p>\n<p>Body</p>", out)
		assert.Equal(t, "intro", r.Name())
		output := buf.String()
		assert.Contains(t, output, "pass=intro")
		assert.Contains(t, output, "changed=true")
		assert.Contains(t, output, "added=12")
	})

	t.Run("logs unchanged content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Recoverer{
			NameFn: func() string { return "card" },
			RecoverFn: func(page *artex.RawPage, content string) (string, error) {
				return content, nil
			},
		}

		r := artexslog.NewLoggingRecoverer(inner, logger)
		_, err := r.Recover(nil, "<p>Body</p>")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "changed=false")
	})
}
