// Package search filters clipboard history for the search command and the
// terminal browser.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/ropias/internal/store"
)

// Normalize maps s to the form used for matching: NFC, then Unicode case
// folding, so composed and decomposed accents compare equal regardless of case.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Terms splits a query into normalized, whitespace-separated terms.
func Terms(query string) []string {
	return strings.Fields(Normalize(query))
}

// Matches reports whether content contains every term.
// Terms must already be normalized (see Terms).
func Matches(content string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	haystack := Normalize(content)
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// Match returns the entries whose content contains every query term.
// An empty query matches everything. Input order is preserved, so history
// read from the store stays most recent first.
func Match(entries []store.Entry, query string) []store.Entry {
	terms := Terms(query)
	out := make([]store.Entry, 0, len(entries))
	for _, e := range entries {
		if Matches(e.Content, terms) {
			out = append(out, e)
		}
	}
	return out
}

// Limit truncates entries to at most n. n <= 0 means no limit.
func Limit(entries []store.Entry, n int) []store.Entry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}
