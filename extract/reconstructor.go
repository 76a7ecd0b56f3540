package extract

import (
	"strings"

	"github.com/fwojciec/artex"
	"github.com/fwojciec/artex/goquery"
)

// Reconstructor turns the winning content HTML into filtered plain text.
type Reconstructor struct {
	Converter artex.Converter

	// SectionBlocks converts each div[id^="section-"] block and each run
	// of markup between blocks on its own, in document order.
	SectionBlocks bool
}

// NewReconstructor creates a Reconstructor using conv for HTML to text.
func NewReconstructor(conv artex.Converter, sectionBlocks bool) *Reconstructor {
	return &Reconstructor{Converter: conv, SectionBlocks: sectionBlocks}
}

// Reconstruct sanitizes contentHTML, converts it to text and filters the
// lines. Prices and badges always survive.
func (r *Reconstructor) Reconstruct(contentHTML string) (string, error) {
	clean := artex.SanitizeHTML(contentHTML)

	blocks := []string{clean}
	if r.SectionBlocks {
		parts, err := goquery.SplitSections(clean)
		if err != nil {
			return "", err
		}
		if len(parts) > 0 {
			blocks = parts
		}
	}

	var texts []string
	for _, b := range blocks {
		if strings.TrimSpace(b) == "" {
			continue
		}
		text, err := r.Converter.Convert(b)
		if err != nil {
			return "", err
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}

	return artex.FilterLines(strings.Join(texts, "\n\n")), nil
}
