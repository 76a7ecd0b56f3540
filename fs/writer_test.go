package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "simple path",
			url:  "https://example.com/gear/best-gloves",
			want: "example.com/gear/best-gloves.txt",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://www.runnersworld.com/gear/a1/best-gloves/",
			want: "www.runnersworld.com/gear/a1/best-gloves/index.txt",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			want: "example.com/index.txt",
		},
		{
			name: "root without trailing slash",
			url:  "https://example.com",
			want: "example.com/index.txt",
		},
		{
			name: "ignores query string and port",
			url:  "https://example.com:8443/story?ref=home",
			want: "example.com/story.txt",
		},
		{
			name: "ignores fragment",
			url:  "https://example.com/story#comments",
			want: "example.com/story.txt",
		},
		{
			name: "cannot escape the host directory",
			url:  "https://example.com/../../etc/passwd",
			want: "example.com/etc/passwd.txt",
		},
		{
			name:    "requires a host",
			url:     "/relative/story",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.URLToPath(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatExtraction(t *testing.T) {
	t.Parallel()

	e := &artex.Extraction{
		URL:       "https://example.com/gear/best-gloves",
		Title:     "Best Running Gloves",
		Author:    artex.NotAvailable,
		Content:   "Best Overall\n\nAcme Thermal Glove\n\n$45",
		Strategy:  artex.StrategyPrimary,
		CreatedAt: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
	}

	got := fs.FormatExtraction(e)

	want := `---
source: https://example.com/gear/best-gloves
title: Best Running Gloves
author: N/A
strategy: primary
extracted: 2026-01-08
---

Best Overall

Acme Thermal Glove

$45`

	assert.Equal(t, want, got)
}

func TestWriter_CreateExtraction(t *testing.T) {
	t.Parallel()

	t.Run("writes the extraction under its host", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		e := &artex.Extraction{
			URL:       "https://example.com/gear/best-gloves",
			Title:     "Best Running Gloves",
			Author:    "Jo Runner",
			Content:   "Warm hands.",
			Strategy:  artex.StrategyAMP,
			CreatedAt: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
		}

		err := w.CreateExtraction(context.Background(), e)
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(baseDir, "example.com", "gear", "best-gloves.txt"))
		require.NoError(t, err)
		assert.Equal(t, fs.FormatExtraction(e), string(content))
	})

	t.Run("stamps a missing creation time", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())
		e := &artex.Extraction{URL: "https://example.com/story", Content: "Body"}

		err := w.CreateExtraction(context.Background(), e)

		require.NoError(t, err)
		assert.False(t, e.CreatedAt.IsZero())
	})

	t.Run("overwrites an earlier extraction of the same URL", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewWriter(baseDir)

		for _, body := range []string{"first", "second"} {
			require.NoError(t, w.CreateExtraction(context.Background(), &artex.Extraction{
				URL:     "https://example.com/story",
				Content: body,
			}))
		}

		content, err := os.ReadFile(filepath.Join(baseDir, "example.com", "story.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "second")
		assert.NotContains(t, string(content), "first")
	})

	t.Run("validates extraction", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.CreateExtraction(context.Background(), &artex.Extraction{Content: "Body"})

		require.Error(t, err)
		assert.Equal(t, artex.EINVALID, artex.ErrorCode(err))
	})
}
