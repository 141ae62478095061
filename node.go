package errscrape

import (
	"slices"
	"strings"
)

// Attr filters FindAll results by attribute.
// A "class" filter matches any one of the node's class tokens;
// other keys match the attribute value exactly.
type Attr struct {
	Key string
	Val string
}

// Class is shorthand for a class attribute filter.
func Class(name string) Attr {
	return Attr{Key: "class", Val: name}
}

// Match reports whether an attribute value found on a node satisfies the
// filter.
func (a Attr) Match(val string) bool {
	if a.Key == "class" {
		return slices.Contains(strings.Fields(val), a.Val)
	}
	return val == a.Val
}

// Node is a read-only view of one element in a parsed markup tree.
type Node interface {
	// FindAll returns every descendant element named tag that matches all
	// filters, in document order. The result may be empty.
	FindAll(tag string, filters ...Attr) []Node

	// Text returns the concatenation of every descendant text node with
	// markup stripped. Whitespace is preserved as found in the source.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(key string) (string, bool)
}

// Document is the root of a parsed markup tree.
type Document interface {
	Node
}

// Parser builds a Document from raw markup.
type Parser interface {
	// Parse returns ESTRUCTURE if html is empty or cannot be parsed.
	Parse(html string) (Document, error)
}
