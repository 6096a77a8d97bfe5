package model

import "sort"

// EvidenceItem is one normalized piece of collected content: a forum post,
// video, tweet, or web page surfaced by a source adapter for a topic.
type EvidenceItem struct {
	Platform   string `json:"platform"`          // Source platform id (e.g. "reddit", "youtube")
	Title      string `json:"title"`             // Item headline or caption
	URL        string `json:"url"`               // Identity key within one collection pass
	Engagement int64  `json:"engagement"`        // Non-negative popularity proxy; unit varies by platform
	Snippet    string `json:"snippet,omitempty"` // Short body excerpt, markup already stripped
}

// Text returns the searchable text of the item (title plus snippet).
func (e EvidenceItem) Text() string {
	if e.Snippet == "" {
		return e.Title
	}
	return e.Title + " " + e.Snippet
}

// SourceFailure records a source that could not contribute evidence.
type SourceFailure struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Collection is the outcome of one concurrent collection pass across the
// requested sources. It is written once at collection time and treated as
// read-only during synthesis.
type Collection struct {
	ByPlatform     map[string][]EvidenceItem `json:"by_platform"`
	Failed         []SourceFailure           `json:"failed_sources"`
	SourcesChecked int                       `json:"sources_checked"`
}

// Merged flattens the per-platform evidence into a single slice. Platforms
// are visited in sorted order so downstream ranking sees a stable input
// regardless of goroutine completion order.
func (c Collection) Merged() []EvidenceItem {
	platforms := make([]string, 0, len(c.ByPlatform))
	for p := range c.ByPlatform {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	var merged []EvidenceItem
	for _, p := range platforms {
		merged = append(merged, c.ByPlatform[p]...)
	}
	return merged
}

// SourcesUsed returns the platforms that contributed at least one item.
func (c Collection) SourcesUsed() []string {
	used := make([]string, 0, len(c.ByPlatform))
	for p, items := range c.ByPlatform {
		if len(items) > 0 {
			used = append(used, p)
		}
	}
	sort.Strings(used)
	return used
}
