// Package htmltomarkdown renders extracted article HTML as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
)

// Ensure Converter implements artex.Converter at compile time.
var _ artex.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv  *converter.Converter
	rules []artex.SkipRule
}

// Option configures a Converter.
type Option func(*Converter)

// WithSkipRules removes elements matching rules before conversion.
func WithSkipRules(rules ...artex.SkipRule) Option {
	return func(c *Converter) {
		c.rules = append(c.rules, rules...)
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", artex.Errorf(artex.EINVALID, "empty HTML input")
	}

	if len(c.rules) > 0 {
		pruned, err := goquery.Prune(html, c.rules)
		if err != nil {
			return "", err
		}
		html = pruned
	}

	return c.conv.ConvertString(html)
}
