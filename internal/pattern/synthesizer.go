// Package pattern clusters evidence into cross-source patterns. A pattern is
// a keyword corroborated by at least two evidence items; cross-platform
// corroboration outranks raw popularity, and a greedy claiming pass keeps
// one viral item from spawning a near-duplicate pattern per keyword it
// contains.
package pattern

import (
	"sort"

	"github.com/pmorozov/signalmesh/internal/keyword"
	"github.com/pmorozov/signalmesh/internal/model"
)

const (
	maxPatterns        = 10
	maxEvidencePerItem = 5
	minCorroboration   = 2
)

// candidate is one keyword under consideration, with its backing evidence.
type candidate struct {
	keyword    string
	evidence   []model.EvidenceItem
	platforms  map[string]struct{}
	engagement int64
	firstSeen  int // Index of the earliest backing item, for stable ties
}

// Synthesize clusters evidence into at most ten patterns. Fewer than two
// items can never produce corroboration, so the result is empty (not an
// error).
func Synthesize(evidence []model.EvidenceItem) []model.Pattern {
	patterns, _ := SynthesizeWith(evidence, make(map[string]struct{}))
	return patterns
}

// SynthesizeWith runs the rank-then-claim pass. The claimed-URL set is
// threaded through explicitly and returned so the function stays pure and
// independently testable; callers that chain passes feed the returned set
// back in.
func SynthesizeWith(evidence []model.EvidenceItem, claimed map[string]struct{}) ([]model.Pattern, map[string]struct{}) {
	if len(evidence) < minCorroboration {
		return nil, claimed
	}

	candidates := index(evidence)

	// Rank: platform diversity first, total engagement second, first-seen
	// index last so ties break deterministically.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if len(a.platforms) != len(b.platforms) {
			return len(a.platforms) > len(b.platforms)
		}
		if a.engagement != b.engagement {
			return a.engagement > b.engagement
		}
		if a.firstSeen != b.firstSeen {
			return a.firstSeen < b.firstSeen
		}
		return a.keyword < b.keyword
	})

	var patterns []model.Pattern
	for _, c := range candidates {
		if len(patterns) == maxPatterns {
			break
		}

		unclaimed := selectUnclaimed(c.evidence, claimed)
		if len(unclaimed) == 0 {
			// Every backing item already belongs to a stronger pattern;
			// this candidate adds nothing new.
			continue
		}

		if len(unclaimed) > maxEvidencePerItem {
			unclaimed = unclaimed[:maxEvidencePerItem]
		}
		for _, item := range unclaimed {
			claimed[item.URL] = struct{}{}
		}

		patterns = append(patterns, model.Pattern{
			Keyword:  c.keyword,
			Strength: strength(len(c.platforms)),
			Sources:  sortedPlatforms(c.platforms),
			Evidence: unclaimed,
		})
	}

	return patterns, claimed
}

// index builds keyword candidates from the evidence pool, dropping any
// keyword backed by fewer than two items.
func index(evidence []model.EvidenceItem) []candidate {
	byKeyword := make(map[string]*candidate)
	var order []string

	for i, item := range evidence {
		for kw := range keyword.Extract(item.Text()) {
			c, ok := byKeyword[kw]
			if !ok {
				c = &candidate{
					keyword:   kw,
					platforms: make(map[string]struct{}),
					firstSeen: i,
				}
				byKeyword[kw] = c
				order = append(order, kw)
			}
			c.evidence = append(c.evidence, item)
			c.platforms[item.Platform] = struct{}{}
			c.engagement += item.Engagement
		}
	}

	candidates := make([]candidate, 0, len(order))
	for _, kw := range order {
		if c := byKeyword[kw]; len(c.evidence) >= minCorroboration {
			candidates = append(candidates, *c)
		}
	}
	return candidates
}

// selectUnclaimed returns the candidate's evidence whose URLs are still
// unclaimed, ordered by engagement descending (stable on input order).
func selectUnclaimed(evidence []model.EvidenceItem, claimed map[string]struct{}) []model.EvidenceItem {
	var out []model.EvidenceItem
	for _, item := range evidence {
		if _, taken := claimed[item.URL]; !taken {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Engagement > out[j].Engagement
	})
	return out
}

func strength(platformCount int) model.PatternStrength {
	switch {
	case platformCount >= 3:
		return model.StrengthEstablished
	case platformCount == 2:
		return model.StrengthGrowing
	default:
		return model.StrengthEmerging
	}
}

func sortedPlatforms(set map[string]struct{}) []string {
	platforms := make([]string, 0, len(set))
	for p := range set {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}
