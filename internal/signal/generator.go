// Package signal computes financial signals over probability sources. Both
// generators are pure functions, total over their numeric domain: they never
// fail, and a missing probability defaults to 0.5.
package signal

import (
	"fmt"
	"math"

	"github.com/pmorozov/signalmesh/internal/model"
)

const (
	arbitrageThreshold  = 0.03
	divergenceThreshold = 0.15
	divergenceHigh      = 0.30

	confidenceFloor = 0.70
	confidenceCap   = 0.95

	// DefaultProbability substitutes for a missing market probability.
	DefaultProbability = 0.5
)

// Quote is one market source's implied probability for a proposition, on a
// 0-1 scale.
type Quote struct {
	Source      string
	Probability *float64
}

func (q Quote) probability() float64 {
	if q.Probability == nil {
		return DefaultProbability
	}
	return *q.Probability
}

// Arbitrage compares two sources quoting equivalent propositions. The spread
// is the absolute probability gap; anything above 3 points is flagged, with
// the higher-priced source named as overpriced (its YES side costs more than
// the other market implies is justified). Confidence starts at a 0.70 floor
// reflecting baseline trust in any detected spread and grows with the
// spread, capped below certainty at 0.95.
func Arbitrage(a, b Quote) model.ArbitrageSignal {
	pa, pb := a.probability(), b.probability()
	spread := math.Abs(pa - pb)

	sig := model.ArbitrageSignal{Spread: spread}
	if spread <= arbitrageThreshold {
		return sig
	}

	higher := a.Source
	if pb > pa {
		higher = b.Source
	}

	sig.Detected = true
	sig.Direction = fmt.Sprintf("%s overpriced", higher)
	sig.Confidence = math.Min(confidenceCap, confidenceFloor+spread*2)
	return sig
}

// Divergence compares aggregate social sentiment against a market's implied
// probability, both on a 0-1 scale. Gaps above 0.15 are flagged; above 0.30
// the magnitude is "high".
func Divergence(avgSentiment float64, marketProbability *float64) model.DivergenceSignal {
	prob := DefaultProbability
	if marketProbability != nil {
		prob = *marketProbability
	}

	gap := math.Abs(avgSentiment - prob)
	sig := model.DivergenceSignal{
		Divergence: gap,
		Magnitude:  magnitude(gap),
	}
	if gap <= divergenceThreshold {
		return sig
	}

	sig.Detected = true
	if avgSentiment > prob {
		sig.Description = fmt.Sprintf(
			"social sentiment (%d%%) runs ahead of market odds (%d%%)",
			roundPct(avgSentiment), roundPct(prob))
	} else {
		sig.Description = fmt.Sprintf(
			"market odds (%d%%) run ahead of social sentiment (%d%%)",
			roundPct(prob), roundPct(avgSentiment))
	}
	return sig
}

func magnitude(gap float64) string {
	switch {
	case gap > divergenceHigh:
		return "high"
	case gap > divergenceThreshold:
		return "moderate"
	default:
		return "low"
	}
}

func roundPct(v float64) int {
	return int(math.Round(v * 100))
}
