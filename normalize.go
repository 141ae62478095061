package errscrape

import (
	"strings"
	"unicode"
)

// NormalizeCode removes every whitespace character from text.
// Codes like "AB 12\n3" are split across lines in some provider tables.
func NormalizeCode(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// NormalizeMessage collapses whitespace runs into single spaces and trims
// both ends.
func NormalizeMessage(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// GroupName turns a heading or label into an output-safe group name by
// replacing whitespace runs with underscores.
func GroupName(text string) string {
	return strings.Join(strings.Fields(text), "_")
}
