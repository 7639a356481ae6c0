// Package search implements fuzzy stack search: text similarity scoring,
// weighted field ranking, autocomplete suggestions, and a TTL-bounded
// result cache.
package search

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize prepares free text for matching: lowercase, special characters
// stripped, whitespace collapsed and trimmed.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = nonWordRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
