package model

// SentimentScore is the positive/neutral/negative split for one text corpus.
// Fractions sum to 1 for any non-degenerate input.
type SentimentScore struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// NeutralSentiment is the lexicon scorer's zero-signal convention: no
// lexicon hits means the corpus is fully neutral. The market-sentiment path
// uses a different zero-signal default (an even one-third split); the two
// conventions are intentionally distinct.
func NeutralSentiment() SentimentScore {
	return SentimentScore{Positive: 0, Neutral: 1, Negative: 0}
}

// SentimentSummary carries the overall label plus per-source breakdowns.
type SentimentSummary struct {
	Overall  string                    `json:"overall"` // "positive", "neutral" or "negative"
	Score    SentimentScore            `json:"score"`
	BySource map[string]SentimentScore `json:"by_source"`
}
