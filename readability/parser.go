// Package readability provides the readability-algorithm fallback parser,
// built on go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/go-shiori/go-readability"
)

// Ensure Parser implements artex.Parser at compile time.
var _ artex.Parser = (*Parser)(nil)

// Parser wraps go-readability to extract main content from HTML.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs the readability algorithm over rawHTML.
func (p *Parser) Parse(pageURL, rawHTML string) (*artex.Candidate, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, artex.Errorf(artex.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &artex.Candidate{
		Title:    article.Title,
		Content:  article.Content,
		Author:   article.Byline,
		Strategy: artex.StrategyReadability,
	}, nil
}
