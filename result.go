package artex

// NotAvailable is reported for titles and authors nobody could extract.
const NotAvailable = "N/A"

// Result is the outcome of one extraction request.
type Result struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Title   string `json:"title"`
	Author  string `json:"author"`

	// Markdown is set only when Markdown output was requested.
	Markdown string `json:"markdown,omitempty"`

	// Empty is true when no strategy produced a body. Full then holds
	// whatever metadata was extracted.
	Empty bool `json:"-"`

	Full *Candidate `json:"fullResult"`
}

// Messages reported alongside empty results.
const (
	EmptyMessage        = "No main content extracted, but other data available."
	EmptyPossibleIssues = "Non-standard layout or protection."
)
