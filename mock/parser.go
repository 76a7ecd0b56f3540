package mock

import "github.com/fwojciec/artex"

var _ artex.Parser = (*Parser)(nil)

// Parser is a mock implementation of artex.Parser.
type Parser struct {
	ParseFn func(pageURL, html string) (*artex.Candidate, error)
}

func (p *Parser) Parse(pageURL, html string) (*artex.Candidate, error) {
	return p.ParseFn(pageURL, html)
}
