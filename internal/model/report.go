package model

// ResearchReport is the full synthesis result for one topic research pass.
// Every field is constructed fresh per request; nothing persists across
// requests.
type ResearchReport struct {
	Topic          string           `json:"topic"`
	Timeframe      string           `json:"timeframe"` // e.g. "7d"
	Patterns       []Pattern        `json:"patterns"`
	Sentiment      SentimentSummary `json:"sentiment"`
	TopDiscussions []EvidenceItem   `json:"top_discussions"`
	EmergingTopics []string         `json:"emerging_topics"`
	Meta           ResearchMeta     `json:"meta"`

	Brief *Brief `json:"brief,omitempty"` // Optional LLM brief; never affects synthesis
}

// ResearchMeta lets a caller distinguish "no signal found" from "sources
// were unreachable".
type ResearchMeta struct {
	SourcesChecked int             `json:"sources_checked"`
	SourcesUsed    []string        `json:"sources_used"`
	FailedSources  []SourceFailure `json:"failed_sources,omitempty"`
}

// TrendingReport is the cross-platform trending result for one region.
type TrendingReport struct {
	Region  string    `json:"region"`
	Sources []string  `json:"sources"`
	Trends  []Pattern `json:"trends"`
}

// Brief is an optional LLM-written research brief rendered after synthesis.
// It is generated from the finished report with a strict citation allowlist
// and never feeds back into patterns, sentiment, or signals.
type Brief struct {
	Provider string   `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	BriefMD  string   `json:"brief_md,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}
