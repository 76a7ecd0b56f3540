package artex

// Converter converts content HTML into another text representation,
// either plain text or Markdown.
type Converter interface {
	// Convert transforms HTML content into text.
	// The input should be clean HTML (e.g., from a Parser).
	Convert(html string) (string, error)
}

// SkipAction says what a text converter does with elements matching a rule.
type SkipAction string

// SkipAction constants for SkipRule.
const (
	// SkipElement drops the element and everything inside it.
	SkipElement SkipAction = "skip"
)

// SkipRule pairs a CSS selector with the action applied to matching
// elements during text conversion.
type SkipRule struct {
	Selector string
	Action   SkipAction
}
