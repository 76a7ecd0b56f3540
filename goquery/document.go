package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
	"golang.org/x/net/html"
)

// containerSelectors lists article container candidates, most specific first.
var containerSelectors = []string{
	"main article",
	"article",
	`[itemprop="articleBody"]`,
	"[data-article-body]",
	".content article",
	".content",
}

func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, artex.Errorf(artex.EPARSE, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// findContainer returns the article container of doc, falling back to body.
func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Find("body").First()
}

// spacedText returns the text of s with a space between adjacent text
// nodes, so "<b>Best Overall</b><h3>Acme</h3>" reads "Best Overall Acme".
func spacedText(s *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			parts = append(parts, n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return artex.NormalizeText(strings.Join(parts, " "))
}

// deepestMatch returns the first element under root, in document order,
// whose text satisfies match while none of its child elements' does.
func deepestMatch(root *goquery.Selection, match func(string) bool) *goquery.Selection {
	var found *goquery.Selection
	root.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !match(spacedText(el)) {
			return true
		}
		inner := el.Children().FilterFunction(func(_ int, c *goquery.Selection) bool {
			return match(spacedText(c))
		})
		if inner.Length() > 0 {
			return true
		}
		found = el
		return false
	})
	return found
}

// Prune removes every element matched by a skip rule and returns the
// remaining body markup.
func Prune(rawHTML string, rules []artex.SkipRule) (string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return "", err
	}
	for _, r := range rules {
		if r.Action != artex.SkipElement || r.Selector == "" {
			continue
		}
		doc.Find(r.Selector).Remove()
	}
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", artex.Errorf(artex.EPARSE, "failed to render HTML: %v", err)
	}
	return out, nil
}

// SplitSections cuts rawHTML at its top-level div[id^="section-"] blocks
// and returns the blocks and the markup between them in document order.
// Wrappers holding a block are unwrapped. It returns nil when rawHTML has
// no section blocks.
func SplitSections(rawHTML string) ([]string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}
	sections := doc.Find(`div[id^="section-"]`)
	if sections.Length() == 0 {
		return nil, nil
	}

	holders := make(map[*html.Node]bool)
	for _, n := range sections.Nodes {
		for p := n.Parent; p != nil; p = p.Parent {
			holders[p] = true
		}
	}

	var parts []string
	var run strings.Builder
	flush := func() {
		if strings.TrimSpace(run.String()) != "" {
			parts = append(parts, run.String())
		}
		run.Reset()
	}

	var walk func(n *html.Node) error
	walk = func(n *html.Node) error {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case sections.IsNodes(c):
				flush()
				var b strings.Builder
				if err := html.Render(&b, c); err != nil {
					return err
				}
				parts = append(parts, b.String())
			case holders[c]:
				if err := walk(c); err != nil {
					return err
				}
			default:
				if err := html.Render(&run, c); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(doc.Find("body").Nodes[0]); err != nil {
		return nil, artex.Errorf(artex.EPARSE, "failed to render section block: %v", err)
	}
	flush()
	return parts, nil
}
