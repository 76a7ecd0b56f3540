package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/artex"
)

const (
	ledeSelector = ".content-lede, .article-dek, .dek, .intro, .content-info, .css-lede, .css-dek"

	// minIntroChars is the length a paragraph's text must exceed to count.
	minIntroChars = 40

	introKeyChars     = 120
	introPresentChars = 80
)

var _ artex.Recoverer = (*IntroRecovery)(nil)

// IntroRecovery restores lede paragraphs that content extractors drop
// because they sit above the first subheading.
type IntroRecovery struct{}

// NewIntroRecovery creates a new IntroRecovery.
func NewIntroRecovery() *IntroRecovery {
	return &IntroRecovery{}
}

// Name implements artex.Recoverer.
func (r *IntroRecovery) Name() string { return "intro" }

// Extract collects the intro paragraphs of rawHTML as "<p>…</p>" markup:
// first any lede/dek block, then every paragraph of the article container
// that precedes the first h2 or h3. Short and duplicate paragraphs are
// skipped. It returns "" when there is no intro.
func (r *IntroRecovery) Extract(rawHTML string) (string, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return "", err
	}
	root := findContainer(doc)

	var (
		paras []string
		seen  = make(map[uint64]struct{})
	)
	add := func(p *goquery.Selection) {
		text := spacedText(p)
		if utf8.RuneCountInString(text) <= minIntroChars {
			return
		}
		key := xxhash.Sum64String(prefix(strings.ToLower(text), introKeyChars))
		if _, ok := seen[key]; ok {
			return
		}
		inner, err := p.Html()
		if err != nil {
			return
		}
		seen[key] = struct{}{}
		paras = append(paras, "<p>"+strings.TrimSpace(inner)+"</p>")
	}

	if lede := root.Find(ledeSelector).First(); lede.Length() > 0 {
		lede.Find("p").Each(func(_ int, p *goquery.Selection) { add(p) })
	}

	root.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		switch goquery.NodeName(el) {
		case "h2", "h3":
			return false
		case "p":
			add(el)
		}
		return true
	})

	return strings.Join(paras, "\n"), nil
}

// Recover implements artex.Recoverer. The intro is prepended unless its
// opening text already appears in content.
func (r *IntroRecovery) Recover(page *artex.RawPage, content string) (string, error) {
	if page == nil || page.HTML == "" {
		return content, nil
	}
	intro, err := r.Extract(page.HTML)
	if err != nil {
		return content, err
	}
	if intro == "" {
		return content, nil
	}
	present, err := containsIntro(content, intro)
	if err != nil {
		return content, err
	}
	if present {
		return content, nil
	}
	return intro + "\n" + content, nil
}

// containsIntro reports whether the opening of the intro's first paragraph
// is already part of content's text.
func containsIntro(content, intro string) (bool, error) {
	if strings.TrimSpace(content) == "" {
		return false, nil
	}
	introDoc, err := parse(intro)
	if err != nil {
		return false, err
	}
	first := strings.ToLower(spacedText(introDoc.Find("p").First()))
	if first == "" {
		return false, nil
	}
	contentDoc, err := parse(content)
	if err != nil {
		return false, err
	}
	text := strings.ToLower(spacedText(contentDoc.Find("body")))
	return strings.Contains(text, prefix(first, introPresentChars)), nil
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
