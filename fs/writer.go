// Package fs writes extracted articles to a directory as text files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/artex"
)

// URLToPath converts an article URL to a relative file path under its host.
// Example: https://example.com/gear/best-gloves → example.com/gear/best-gloves.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", artex.Errorf(artex.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Hostname() == "" {
		return "", artex.Errorf(artex.EINVALID, "URL has no host: %q", rawURL)
	}

	p := path.Clean("/" + u.Path)
	if p == "/" {
		return u.Hostname() + "/index.txt", nil
	}
	p = strings.TrimPrefix(p, "/")

	// Trailing slash becomes index.txt in that directory.
	if strings.HasSuffix(u.Path, "/") {
		return u.Hostname() + "/" + p + "/index.txt", nil
	}
	return u.Hostname() + "/" + p + ".txt", nil
}

// FormatExtraction formats an extraction with a front-matter header.
func FormatExtraction(e *artex.Extraction) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(e.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(e.Title)
	b.WriteString("\nauthor: ")
	b.WriteString(e.Author)
	b.WriteString("\nstrategy: ")
	b.WriteString(string(e.Strategy))
	b.WriteString("\nextracted: ")
	b.WriteString(e.CreatedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(e.Content)
	return b.String()
}

// Ensure Writer implements artex.ExtractionWriter at compile time.
var _ artex.ExtractionWriter = (*Writer)(nil)

// Writer writes extractions as text files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// CreateExtraction writes e to disk, replacing any earlier file for the
// same URL.
func (w *Writer) CreateExtraction(ctx context.Context, e *artex.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	relPath, err := URLToPath(e.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatExtraction(e)), 0644)
}
