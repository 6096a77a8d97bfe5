// Package dedup collapses near-duplicate records keyed on a normalized
// title. On a key collision the record with the higher completeness score
// wins; arrival order is irrelevant, which makes the operation idempotent.
package dedup

import "strings"

const keyMaxLen = 80

// Dedupe removes near-duplicates from items. title extracts the record's
// title; completeness scores how much data the record carries (richer data
// wins a collision). First-seen position is kept for the surviving key so
// output order is stable.
//
// Known limitation: two distinct titles sharing an 80-character normalized
// prefix collide and the poorer record is dropped. Acceptable while
// real-world titles stay short; revisit the key before lengthening it.
func Dedupe[T any](items []T, title func(T) string, completeness func(T) int) []T {
	if len(items) <= 1 {
		return items
	}

	type slot struct {
		index int
		item  T
		score int
	}

	byKey := make(map[string]*slot, len(items))
	order := make([]string, 0, len(items))

	for i, item := range items {
		key := Key(title(item))
		score := completeness(item)

		existing, seen := byKey[key]
		if !seen {
			byKey[key] = &slot{index: i, item: item, score: score}
			order = append(order, key)
			continue
		}
		if score > existing.score {
			existing.item = item
			existing.score = score
		}
	}

	out := make([]T, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key].item)
	}
	return out
}

// Key normalizes a title into the dedup key: lowercase, strip characters
// outside [a-z0-9\s], collapse whitespace, truncate to 80 characters.
func Key(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	if len(collapsed) > keyMaxLen {
		collapsed = collapsed[:keyMaxLen]
	}
	return collapsed
}
