// Package trafilatura provides the primary article parser, built on
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Parser implements artex.Parser at compile time.
var _ artex.Parser = (*Parser)(nil)

// Parser wraps go-trafilatura to extract title, content and author.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the article from rawHTML. The candidate is tagged as the
// primary strategy; callers reusing it for other documents retag it.
func (p *Parser) Parse(pageURL, rawHTML string) (*artex.Candidate, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, artex.Errorf(artex.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var content string
	if result.ContentNode != nil {
		content, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &artex.Candidate{
		Title:    result.Metadata.Title,
		Content:  content,
		Author:   result.Metadata.Author,
		Strategy: artex.StrategyPrimary,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
