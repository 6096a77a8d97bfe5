package model

// ArbitrageSignal reports a probability mismatch between two market sources
// quoting equivalent propositions.
type ArbitrageSignal struct {
	Detected   bool    `json:"detected"`
	Spread     float64 `json:"spread"`
	Direction  string  `json:"direction,omitempty"`  // Names the source whose YES side is overpriced
	Confidence float64 `json:"confidence,omitempty"` // 0.70 floor, capped below certainty at 0.95
}

// DivergenceSignal reports a mismatch between aggregate social sentiment and
// a market's implied probability.
type DivergenceSignal struct {
	Detected    bool    `json:"detected"`
	Description string  `json:"description,omitempty"`
	Magnitude   string  `json:"magnitude"` // "low", "moderate" or "high"
	Divergence  float64 `json:"divergence"`
}

// Signal is the financial signal pair computed over one request.
type Signal struct {
	Arbitrage           ArbitrageSignal  `json:"arbitrage"`
	SentimentDivergence DivergenceSignal `json:"sentiment_divergence"`
}
