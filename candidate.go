package artex

// Strategy identifies the extraction strategy that produced a candidate.
type Strategy string

// Strategies in priority order.
const (
	StrategyPrimary     Strategy = "primary"
	StrategyAMP         Strategy = "amp"
	StrategyReadability Strategy = "readability"
	StrategyRendered    Strategy = "rendered"
)

// Candidate is one strategy's extraction result.
type Candidate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`

	// Strategy is the strategy that produced Content.
	Strategy Strategy `json:"strategy"`
}

// Score returns the richness score of the candidate's content.
// It is recomputed on every call; nil candidates score zero.
func (c *Candidate) Score() int {
	if c == nil {
		return 0
	}
	return WordCount(c.Content)
}

// Better reports whether c should replace best. Only a strictly higher
// score wins, so on a tie the earlier strategy is kept.
func (c *Candidate) Better(best *Candidate) bool {
	if c == nil || c.Content == "" {
		return false
	}
	return c.Score() > best.Score()
}

// Parser turns a page's HTML into an article candidate.
type Parser interface {
	// Parse extracts title, content HTML and author from html.
	// pageURL is used to resolve relative links and metadata.
	Parse(pageURL, html string) (*Candidate, error)
}
