package mock

import "github.com/fwojciec/errscrape"

var _ errscrape.Parser = (*Parser)(nil)

// Parser is a mock implementation of errscrape.Parser.
type Parser struct {
	ParseFn func(html string) (errscrape.Document, error)
}

func (p *Parser) Parse(html string) (errscrape.Document, error) {
	return p.ParseFn(html)
}
