package aggregate

import (
	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/signal"
)

// GenerateSignals computes the arbitrage and sentiment-divergence pair over
// two market probability sources and a set of social sentiment readings.
// The function is total: missing quotes default to 0.5 and missing
// sentiment defaults to the 0.5 baseline, so the result is always
// well-formed.
func GenerateSignals(quotes []signal.Quote, sentiments []float64) model.Signal {
	a := quoteAt(quotes, 0, "market-a")
	b := quoteAt(quotes, 1, "market-b")

	return model.Signal{
		Arbitrage:           signal.Arbitrage(a, b),
		SentimentDivergence: signal.Divergence(avgSentiment(sentiments), impliedProbability(a, b)),
	}
}

func quoteAt(quotes []signal.Quote, i int, fallbackName string) signal.Quote {
	if i < len(quotes) {
		return quotes[i]
	}
	return signal.Quote{Source: fallbackName}
}

func avgSentiment(sentiments []float64) float64 {
	if len(sentiments) == 0 {
		return signal.DefaultProbability
	}
	var sum float64
	for _, s := range sentiments {
		sum += s
	}
	return sum / float64(len(sentiments))
}

// impliedProbability averages the two quotes into the market side of the
// divergence comparison.
func impliedProbability(a, b signal.Quote) *float64 {
	pa, pb := a.Probability, b.Probability
	switch {
	case pa == nil && pb == nil:
		return nil
	case pa == nil:
		return pb
	case pb == nil:
		return pa
	default:
		avg := (*pa + *pb) / 2
		return &avg
	}
}
