package artex

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Default card section phrasing: "Our Full Running Gloves Reviews".
const (
	DefaultCardMarker   = `our full .*?running .*?gloves .*?reviews`
	DefaultCardCategory = `Gloves?`
)

// cardWindow bounds how much flattened text after the marker is searched.
const cardWindow = 3000

var (
	// PricePattern matches a dollar amount such as "$45" or "$49.99".
	PricePattern = regexp.MustCompile(`\$\s*\d{1,4}(?:[.,]\d{2})?`)

	// BadgePattern matches the promotional phrases put on review cards.
	BadgePattern = regexp.MustCompile(`(?i)\b(Best\s+(?:Overall|Budget|Value|for [^,.;]+)|Editor'?s Choice|Top Pick)\b`)

	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	spaceRe       = regexp.MustCompile(`\s+`)
	theTitleRe    = regexp.MustCompile(`The\s+[A-Z][A-Za-z0-9'’\- ]{2,80}`)
)

// CardMeta is the badge, title and price of the first review card.
// A nil *CardMeta means nothing was found; finders never return an empty one.
type CardMeta struct {
	Badge string `json:"badge"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// IsEmpty reports whether no field is set.
func (m *CardMeta) IsEmpty() bool {
	return m == nil || (m.Badge == "" && m.Title == "" && m.Price == "")
}

// HTML renders the card header fragment, omitting empty fields.
func (m *CardMeta) HTML() string {
	if m.IsEmpty() {
		return ""
	}
	var b strings.Builder
	if m.Badge != "" {
		b.WriteString("<p><strong>" + html.EscapeString(m.Badge) + "</strong></p>")
	}
	if m.Title != "" {
		b.WriteString("<h3>" + html.EscapeString(m.Title) + "</h3>")
	}
	if m.Price != "" {
		b.WriteString("<p>" + html.EscapeString(m.Price) + "</p>")
	}
	return b.String()
}

// CardPattern locates a review-card section and its product titles.
type CardPattern struct {
	// Marker matches the section heading text, case-insensitively.
	Marker *regexp.Regexp

	// Category matches the product category keyword, case-insensitively.
	Category *regexp.Regexp

	// Title matches a capitalised product name ending in the category noun.
	Title *regexp.Regexp
}

// NewCardPattern compiles a CardPattern from a marker expression and a
// category noun expression such as "Gloves?".
func NewCardPattern(marker, category string) (CardPattern, error) {
	m, err := regexp.Compile(`(?i)` + marker)
	if err != nil {
		return CardPattern{}, Errorf(EINVALID, "invalid card marker %q: %v", marker, err)
	}
	c, err := regexp.Compile(`(?i)` + category)
	if err != nil {
		return CardPattern{}, Errorf(EINVALID, "invalid card category %q: %v", category, err)
	}
	t, err := regexp.Compile(`([A-Z][A-Za-z0-9'’\- ]+?\s+(?:` + category + `))`)
	if err != nil {
		return CardPattern{}, Errorf(EINVALID, "invalid card category %q: %v", category, err)
	}
	return CardPattern{Marker: m, Category: c, Title: t}, nil
}

// DefaultCardPattern returns the pattern for running-glove roundups.
func DefaultCardPattern() CardPattern {
	p, err := NewCardPattern(DefaultCardMarker, DefaultCardCategory)
	if err != nil {
		panic(err)
	}
	return p
}

// FlattenHTML strips script and style blocks and all tags from rawHTML and
// collapses whitespace.
func FlattenHTML(rawHTML string) string {
	s := scriptBlockRe.ReplaceAllString(rawHTML, " ")
	s = styleBlockRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// FindCardMetaInText finds the first card's badge, title and price in the
// flattened text that follows the section marker. It is the fallback for
// pages whose markup defeats the DOM heuristic.
func FindCardMetaInText(rawHTML string, p CardPattern) *CardMeta {
	flat := FlattenHTML(rawHTML)

	from := 0
	if p.Marker != nil {
		if loc := p.Marker.FindStringIndex(flat); loc != nil {
			from = loc[1]
		}
	}
	window := flat[from:]
	if len(window) > cardWindow {
		cut := cardWindow
		for cut > 0 && !utf8.RuneStart(window[cut]) {
			cut--
		}
		window = window[:cut]
	}

	meta := &CardMeta{
		Badge: strings.TrimSpace(BadgePattern.FindString(window)),
		Price: PricePattern.FindString(window),
	}

	// The badge usually precedes the product name; keep it out of the title.
	titleWindow := window
	if meta.Badge != "" {
		titleWindow = strings.Replace(window, meta.Badge, " ", 1)
	}
	if p.Title != nil {
		if m := p.Title.FindStringSubmatch(titleWindow); m != nil {
			meta.Title = strings.TrimSpace(m[1])
		}
	}
	if len(meta.Title) < 6 {
		if alt := theTitleRe.FindString(titleWindow); alt != "" {
			meta.Title = strings.TrimSpace(alt)
		}
	}

	if meta.IsEmpty() {
		return nil
	}
	return meta
}

// NormalizeText collapses whitespace runs to single spaces and trims.
func NormalizeText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
