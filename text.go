package artex

import (
	"regexp"
	"strings"
)

var (
	apostropheRe = regexp.MustCompile("[\u0019‘’]")
	quoteRe      = regexp.MustCompile("[“”]")
	controlRe    = regexp.MustCompile("[\u0014-\u001F\u007F-\u009F]")
	dashRe       = regexp.MustCompile("[–—]")
	entityRe     = regexp.MustCompile(`&[#A-Za-z0-9]+;`)

	ordinalRe = regexp.MustCompile(`^\d+\.\s*$`)
	badgeRe   = regexp.MustCompile(`(?i)\b(Best|Top|Editor'?s Choice|Overall|Budget|Value|Pick)\b`)
	ctaRe     = regexp.MustCompile(`(?i)newsletter|subscribe|read article|leave a reply|your email address|previous post|next post|notifications`)
	shopRe    = regexp.MustCompile(`(?i)compare prices|shop the shoe|available at|buy now`)
	blanksRe  = regexp.MustCompile(`\n{3,}`)
)

// knownEntities are decoded by SanitizeHTML; any other entity is dropped.
var knownEntities = map[string]string{
	"&amp;":  "&",
	"&quot;": `"`,
	"&apos;": "'",
	"&nbsp;": " ",
	"&lt;":   "<",
	"&gt;":   ">",
}

// SanitizeHTML normalises characters in content HTML before text
// conversion: curly quotes become straight, dashes become hyphens,
// control characters are removed and entities outside a small known set
// are dropped.
func SanitizeHTML(s string) string {
	s = apostropheRe.ReplaceAllString(s, "'")
	s = quoteRe.ReplaceAllString(s, `"`)
	s = controlRe.ReplaceAllString(s, "")
	s = dashRe.ReplaceAllString(s, "-")
	s = strings.ReplaceAll(s, "&#xA0;", " ")
	return entityRe.ReplaceAllStringFunc(s, func(m string) string {
		return knownEntities[m]
	})
}

// LineClassification is the keep/drop verdict for one line of text.
type LineClassification struct {
	Text string
	Keep bool
}

// ClassifyLine decides whether a trimmed line of converted text is kept.
// Lines with a price or a badge keyword are always kept.
func ClassifyLine(line string) LineClassification {
	text := strings.TrimSpace(line)
	c := LineClassification{Text: text}

	switch {
	case text == "":
	case ordinalRe.MatchString(text):
	case PricePattern.MatchString(text), badgeRe.MatchString(text):
		c.Keep = true
	case ctaRe.MatchString(text):
	case shopRe.MatchString(text):
	default:
		c.Keep = true
	}
	return c
}

// FilterLines drops empty lines, bare ordinals and calls to action from
// text and rejoins the remaining lines separated by blank lines.
func FilterLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if c := ClassifyLine(line); c.Keep {
			kept = append(kept, c.Text)
		}
	}
	out := strings.Join(kept, "\n\n")
	out = blanksRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
