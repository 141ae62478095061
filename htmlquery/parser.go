// Package htmlquery provides an XPath based implementation of
// errscrape.Parser backed by github.com/antchfx/htmlquery.
package htmlquery

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/errscrape"
	"golang.org/x/net/html"
)

// Ensure Parser implements errscrape.Parser at compile time.
var _ errscrape.Parser = (*Parser)(nil)

// Parser parses HTML into html.Node trees queried with XPath.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses s and returns its document root.
func (p *Parser) Parse(s string) (errscrape.Document, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "empty HTML input")
	}

	doc, err := htmlquery.Parse(strings.NewReader(s))
	if err != nil {
		return nil, errscrape.Errorf(errscrape.ESTRUCTURE, "failed to parse HTML: %v", err)
	}

	return &Node{n: doc}, nil
}

// Ensure Node implements errscrape.Node at compile time.
var _ errscrape.Node = (*Node)(nil)

// Node wraps an html.Node.
type Node struct {
	n *html.Node
}

// FindAll evaluates .//tag relative to the node and keeps elements
// matching every filter.
func (n *Node) FindAll(tag string, filters ...errscrape.Attr) []errscrape.Node {
	found, err := htmlquery.QueryAll(n.n, ".//"+tag)
	if err != nil {
		return nil
	}

	var nodes []errscrape.Node
	for _, m := range found {
		if !matches(m, filters) {
			continue
		}
		nodes = append(nodes, &Node{n: m})
	}
	return nodes
}

// Text returns the combined text of all descendants.
func (n *Node) Text() string {
	return htmlquery.InnerText(n.n)
}

// Attr returns the named attribute of the node.
func (n *Node) Attr(key string) (string, bool) {
	if !htmlquery.ExistsAttr(n.n, key) {
		return "", false
	}
	return htmlquery.SelectAttr(n.n, key), true
}

func matches(n *html.Node, filters []errscrape.Attr) bool {
	for _, f := range filters {
		if !htmlquery.ExistsAttr(n, f.Key) || !f.Match(htmlquery.SelectAttr(n, f.Key)) {
			return false
		}
	}
	return true
}
