// Package htmltotext renders article HTML as wrapped plain text.
package htmltotext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultWordWrap is the column at which lines are wrapped.
const DefaultWordWrap = 130

// DefaultSkipRules drops script, ad and comment blocks before rendering.
func DefaultSkipRules() []artex.SkipRule {
	return []artex.SkipRule{
		{Selector: "script", Action: artex.SkipElement},
		{Selector: "style", Action: artex.SkipElement},
		{Selector: "iframe", Action: artex.SkipElement},
		{Selector: ".ad", Action: artex.SkipElement},
		{Selector: ".advertisement", Action: artex.SkipElement},
		{Selector: ".related-posts", Action: artex.SkipElement},
		{Selector: ".comments", Action: artex.SkipElement},
	}
}

var (
	_ artex.Converter = (*Converter)(nil)

	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	inlineSpaceRe = regexp.MustCompile(`[ \t\r\n\f]+`)
)

// Converter converts HTML to plain text. Links render as their text,
// images are dropped and list items without text are skipped.
type Converter struct {
	wordWrap  int
	skipRules []artex.SkipRule
}

// Option configures a Converter.
type Option func(*Converter)

// WithWordWrap sets the wrap column. Zero or less disables wrapping.
func WithWordWrap(n int) Option {
	return func(c *Converter) {
		c.wordWrap = n
	}
}

// WithSkipRules replaces the default skip rules.
func WithSkipRules(rules []artex.SkipRule) Option {
	return func(c *Converter) {
		c.skipRules = rules
	}
}

// NewConverter creates a Converter with the default wrap column and skip rules.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		wordWrap:  DefaultWordWrap,
		skipRules: DefaultSkipRules(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert implements artex.Converter.
func (c *Converter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}
	pruned, err := goquery.Prune(rawHTML, c.skipRules)
	if err != nil {
		return "", err
	}
	nodes, err := html.ParseFragment(strings.NewReader(pruned), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return "", artex.Errorf(artex.EPARSE, "failed to parse HTML: %v", err)
	}

	w := &writer{}
	for _, n := range nodes {
		w.render(n)
	}

	var lines []string
	for _, line := range strings.Split(w.String(), "\n") {
		lines = append(lines, wrap(strings.TrimSpace(inlineSpaceRe.ReplaceAllString(line, " ")), c.wordWrap)...)
	}
	out := strings.Join(lines, "\n")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out), nil
}

type writer struct {
	strings.Builder
	lists []*list
}

type list struct {
	ordered bool
	n       int
}

func (w *writer) render(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.WriteString(inlineSpaceRe.ReplaceAllString(n.Data, " "))
		return
	case html.ElementNode:
	default:
		w.children(n)
		return
	}

	switch n.Data {
	case "img", "head", "noscript", "svg", "button", "input", "select", "form":
		return
	case "br":
		w.WriteString("\n")
		return
	case "hr":
		w.WriteString("\n\n")
		return
	case "pre":
		w.WriteString("\n\n")
		w.pre(n)
		w.WriteString("\n\n")
		return
	case "ul", "ol":
		w.lists = append(w.lists, &list{ordered: n.Data == "ol"})
		w.WriteString("\n")
		w.children(n)
		w.lists = w.lists[:len(w.lists)-1]
		w.WriteString("\n")
		return
	case "li":
		if strings.TrimSpace(textOf(n)) == "" {
			return
		}
		w.WriteString("\n" + w.bullet())
		w.children(n)
		return
	case "td", "th":
		w.children(n)
		w.WriteString(" ")
		return
	}

	if isBlock(n.Data) {
		w.WriteString("\n\n")
		w.children(n)
		w.WriteString("\n\n")
		return
	}
	w.children(n)
}

func (w *writer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.render(c)
	}
}

func (w *writer) pre(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			w.WriteString(c.Data)
			continue
		}
		w.pre(c)
	}
}

func (w *writer) bullet() string {
	if len(w.lists) == 0 {
		return "* "
	}
	l := w.lists[len(w.lists)-1]
	if !l.ordered {
		return "* "
	}
	l.n++
	return strconv.Itoa(l.n) + ". "
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "main", "header", "footer", "aside", "nav",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "figure", "figcaption",
		"table", "tr", "dl", "dt", "dd", "address", "details", "summary":
		return true
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// wrap breaks line at word boundaries so no line exceeds width runes,
// except single words longer than width.
func wrap(line string, width int) []string {
	if width <= 0 || len([]rune(line)) <= width {
		return []string{line}
	}
	var (
		out []string
		cur strings.Builder
		n   int
	)
	for _, word := range strings.Fields(line) {
		wl := len([]rune(word))
		if n > 0 && n+1+wl > width {
			out = append(out, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += wl
	}
	if n > 0 {
		out = append(out, cur.String())
	}
	return out
}
