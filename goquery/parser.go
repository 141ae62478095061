// Package goquery provides a CSS-selector based implementation of
// errscrape.Parser backed by github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/errscrape"
)

// Ensure Parser implements errscrape.Parser at compile time.
var _ errscrape.Parser = (*Parser)(nil)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses html and returns its document root.
func (p *Parser) Parse(html string) (errscrape.Document, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "failed to parse HTML: %v", err)
	}

	return &Node{sel: doc.Selection}, nil
}

// Ensure Node implements errscrape.Node at compile time.
var _ errscrape.Node = (*Node)(nil)

// Node wraps a single-element goquery selection.
type Node struct {
	sel *goquery.Selection
}

// FindAll returns matching descendants in document order.
func (n *Node) FindAll(tag string, filters ...errscrape.Attr) []errscrape.Node {
	var nodes []errscrape.Node
	n.sel.Find(tag).Each(func(_ int, s *goquery.Selection) {
		if !matches(s, filters) {
			return
		}
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// Text returns the combined text of all descendants.
func (n *Node) Text() string {
	return n.sel.Text()
}

// Attr returns the named attribute of the node.
func (n *Node) Attr(key string) (string, bool) {
	return n.sel.Attr(key)
}

func matches(s *goquery.Selection, filters []errscrape.Attr) bool {
	for _, f := range filters {
		val, ok := s.Attr(f.Key)
		if !ok || !f.Match(val) {
			return false
		}
	}
	return true
}
