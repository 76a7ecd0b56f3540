package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/artex"
)

const (
	headingSelector = "h1, h2, h3, h4, [data-hed], [data-title], a[title], a[aria-label]"
	titleSelector   = headingSelector + ", a"

	// maxAnchorDepth bounds how far above the price element a card heading is searched.
	maxAnchorDepth = 4
	minTitleChars  = 6

	injectRootID = "artex-inject-root"
)

var _ artex.Recoverer = (*CardRecovery)(nil)

// CardRecovery restores the badge, product title and price of the first
// review card in a roundup, which extractors discard as layout.
type CardRecovery struct {
	pattern artex.CardPattern
}

// NewCardRecovery creates a CardRecovery for the given section pattern.
func NewCardRecovery(p artex.CardPattern) *CardRecovery {
	return &CardRecovery{pattern: p}
}

// Name implements artex.Recoverer.
func (r *CardRecovery) Name() string { return "card" }

// FindCardMeta locates the first card through the document structure: the
// first price after the section marker, the nearest enclosing element that
// carries a heading, then the title and badge inside it. It returns nil when
// nothing is found.
func (r *CardRecovery) FindCardMeta(rawHTML string) (*artex.CardMeta, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}
	root := findContainer(doc)

	priceEl := r.findPrice(root)
	if priceEl == nil {
		return nil, nil
	}

	meta := &artex.CardMeta{
		Price: artex.PricePattern.FindString(spacedText(priceEl)),
	}

	anchor := cardAnchor(priceEl)
	meta.Title = r.cardTitle(anchor)

	if b := artex.BadgePattern.FindString(spacedText(anchor)); b != "" {
		meta.Badge = strings.TrimSpace(b)
	} else if b := artex.BadgePattern.FindString(spacedText(anchor.Parent())); b != "" {
		meta.Badge = strings.TrimSpace(b)
	}

	if meta.IsEmpty() {
		return nil, nil
	}
	return meta, nil
}

// findPrice returns the innermost element carrying the first price that
// follows the marker. Without a marker, or with nothing priced after it,
// the marker's parent and then root are searched.
func (r *CardRecovery) findPrice(root *goquery.Selection) *goquery.Selection {
	hasPrice := func(s string) bool { return artex.PricePattern.MatchString(s) }

	marker := r.findMarker(root)
	if marker == nil {
		return deepestMatch(root, hasPrice)
	}

	var found *goquery.Selection
	after := false
	root.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if !after {
			if el.Nodes[0] == marker.Nodes[0] {
				after = true
			}
			return true
		}
		if marker.Contains(el.Nodes[0]) {
			return true
		}
		if !hasPrice(spacedText(el)) {
			return true
		}
		if el.Children().FilterFunction(func(_ int, c *goquery.Selection) bool {
			return hasPrice(spacedText(c))
		}).Length() > 0 {
			return true
		}
		found = el
		return false
	})
	if found == nil {
		found = deepestMatch(marker.Parent(), hasPrice)
	}
	if found == nil {
		found = deepestMatch(root, hasPrice)
	}
	return found
}

func (r *CardRecovery) findMarker(root *goquery.Selection) *goquery.Selection {
	if r.pattern.Marker == nil {
		return nil
	}
	return deepestMatch(root, r.pattern.Marker.MatchString)
}

// cardAnchor walks up from the price element to the first element that
// contains a heading-like child, stopping at the last ancestor tried.
func cardAnchor(priceEl *goquery.Selection) *goquery.Selection {
	el := priceEl
	for i := 0; i < maxAnchorDepth; i++ {
		if el.Find(headingSelector).Length() > 0 {
			return el
		}
		parent := el.Parent()
		if parent.Length() == 0 {
			return el
		}
		el = parent
	}
	return el
}

func (r *CardRecovery) cardTitle(anchor *goquery.Selection) string {
	var title string
	if t := anchor.Find(titleSelector).First(); t.Length() > 0 {
		if v, ok := t.Attr("title"); ok && strings.TrimSpace(v) != "" {
			title = v
		} else if v, ok := t.Attr("aria-label"); ok && strings.TrimSpace(v) != "" {
			title = v
		} else {
			title = spacedText(t)
		}
	}
	title = artex.NormalizeText(title)
	if len(title) >= minTitleChars || r.pattern.Category == nil {
		return title
	}

	// Fall back to the longest descendant text naming the category.
	anchor.Find("*").Each(func(_ int, el *goquery.Selection) {
		t := spacedText(el)
		if r.pattern.Category.MatchString(t) && len(t) > len(title) {
			title = t
		}
	})
	return title
}

// Recover implements artex.Recoverer. The DOM heuristic is tried first and
// the flattened-text heuristic second.
func (r *CardRecovery) Recover(page *artex.RawPage, content string) (string, error) {
	if page == nil || page.HTML == "" {
		return content, nil
	}
	meta, err := r.FindCardMeta(page.HTML)
	if err != nil {
		return content, err
	}
	if meta == nil {
		meta = artex.FindCardMetaInText(page.HTML, r.pattern)
	}
	if meta == nil {
		return content, nil
	}
	return r.Inject(content, meta)
}

// Inject inserts the card header fragment into content after the marker
// element, or at the top when there is none. Content already carrying the
// title, or the fragment itself, is returned unchanged.
func (r *CardRecovery) Inject(content string, meta *artex.CardMeta) (string, error) {
	if meta.IsEmpty() {
		return content, nil
	}
	frag := meta.HTML()

	doc, err := parse(`<div id="` + injectRootID + `">` + content + `</div>`)
	if err != nil {
		return content, err
	}
	root := doc.Find("#" + injectRootID)

	text := spacedText(root)
	if meta.Title != "" && strings.Contains(text, artex.NormalizeText(meta.Title)) {
		return content, nil
	}
	fragDoc, err := parse(frag)
	if err != nil {
		return content, err
	}
	if strings.Contains(text, spacedText(fragDoc.Find("body"))) {
		return content, nil
	}

	if marker := r.findMarker(root); marker != nil {
		marker.AfterHtml(frag)
	} else {
		root.PrependHtml(frag)
	}
	out, err := root.Html()
	if err != nil {
		return content, artex.Errorf(artex.EPARSE, "failed to render content: %v", err)
	}
	return out, nil
}
