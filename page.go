package artex

// RawPage is a fetched document: the original page, its AMP variant or a
// headless render. It is never mutated after creation.
type RawPage struct {
	// URL is the final URL after redirects.
	URL  string
	HTML string
}
