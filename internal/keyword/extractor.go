// Package keyword tokenizes free text into normalized, stop-word-filtered
// terms. Extraction is deterministic, stateless, and does no I/O.
package keyword

import "strings"

// stopWords are common English function words dropped during extraction.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "him": {}, "his": {},
	"how": {}, "its": {}, "new": {}, "now": {}, "old": {}, "see": {},
	"two": {}, "way": {}, "who": {}, "did": {}, "get": {}, "let": {},
	"say": {}, "she": {}, "too": {}, "use": {}, "that": {}, "with": {},
	"have": {}, "this": {}, "will": {}, "your": {}, "from": {}, "they": {},
	"know": {}, "want": {}, "been": {}, "good": {}, "much": {}, "some": {},
	"time": {}, "very": {}, "when": {}, "come": {}, "here": {}, "just": {},
	"like": {}, "long": {}, "make": {}, "many": {}, "more": {}, "only": {},
	"over": {}, "such": {}, "take": {}, "than": {}, "them": {}, "well": {},
	"were": {}, "what": {}, "about": {}, "after": {}, "could": {},
	"their": {}, "there": {}, "these": {}, "which": {}, "would": {},
}

// Extract tokenizes text into a set of normalized keywords: lowercased,
// stripped of anything outside [a-z0-9 ], split on whitespace, with tokens
// of length two or less and stop words removed. Empty input yields an empty
// set.
func Extract(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	if text == "" {
		return tokens
	}

	normalized := normalize(text)
	for _, tok := range strings.Fields(normalized) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// normalize lowercases text and replaces every character outside
// [a-z0-9\s] with a space.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}
