package aggregate

import (
	"math"
	"strings"
	"testing"

	"github.com/pmorozov/signalmesh/internal/signal"
)

func TestGenerateSignals_ArbitrageAndDivergence(t *testing.T) {
	sig := GenerateSignals([]signal.Quote{
		{Source: "polymarket", Probability: fp(0.60)},
		{Source: "manifold", Probability: fp(0.50)},
	}, []float64{0.9, 0.9, 0.9})

	if !sig.Arbitrage.Detected {
		t.Error("expected arbitrage detected for 10-point spread")
	}
	if math.Abs(sig.Arbitrage.Confidence-0.90) > 1e-9 {
		t.Errorf("expected confidence 0.90, got %v", sig.Arbitrage.Confidence)
	}
	if !strings.Contains(sig.Arbitrage.Direction, "polymarket") {
		t.Errorf("expected polymarket named overpriced, got %q", sig.Arbitrage.Direction)
	}

	// Sentiment 0.90 vs implied probability 0.55: divergence 0.35, high.
	if !sig.SentimentDivergence.Detected {
		t.Error("expected sentiment divergence detected")
	}
	if sig.SentimentDivergence.Magnitude != "high" {
		t.Errorf("expected high magnitude, got %q", sig.SentimentDivergence.Magnitude)
	}
}

func TestGenerateSignals_TotalOverMissingInputs(t *testing.T) {
	// No quotes, no sentiment: everything defaults to 0.5 and nothing is
	// detected, but the result is still well-formed.
	sig := GenerateSignals(nil, nil)

	if sig.Arbitrage.Detected {
		t.Error("expected no arbitrage between defaulted quotes")
	}
	if sig.SentimentDivergence.Detected {
		t.Error("expected no divergence between defaulted inputs")
	}
	if sig.SentimentDivergence.Magnitude != "low" {
		t.Errorf("expected low magnitude, got %q", sig.SentimentDivergence.Magnitude)
	}
}

func TestGenerateSignals_SingleQuote(t *testing.T) {
	sig := GenerateSignals([]signal.Quote{
		{Source: "polymarket", Probability: fp(0.70)},
	}, []float64{0.2})

	// Second quote defaults to 0.5: spread 0.20 detected.
	if !sig.Arbitrage.Detected {
		t.Error("expected arbitrage against defaulted second quote")
	}
	// Divergence compares 0.2 sentiment with the single real quote (0.70).
	if !sig.SentimentDivergence.Detected {
		t.Error("expected divergence detected")
	}
	if !strings.Contains(sig.SentimentDivergence.Description, "70%") {
		t.Errorf("expected market odds percentage in description, got %q", sig.SentimentDivergence.Description)
	}
}
