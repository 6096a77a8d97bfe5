package sentiment

import "github.com/pmorozov/signalmesh/internal/model"

// Probability bands for classifying a market as bullish or bearish. Markets
// in between count as neutral.
const (
	bullishAbove = 55.0
	bearishBelow = 45.0
)

// ScoreMarkets summarizes market-implied sentiment as the share of markets
// priced bullish, neutral, and bearish.
//
// Zero-signal convention: with no scorable markets this returns an even
// one-third split. That differs deliberately from the lexicon scorer's
// fully-neutral default; the two paths describe different things (priced
// odds vs. written text) and the mismatch is preserved as a flagged product
// decision rather than silently unified.
func ScoreMarkets(markets []model.Market) model.SentimentScore {
	var bullish, neutral, bearish int
	for _, m := range markets {
		if m.Probability == nil {
			continue
		}
		switch p := *m.Probability; {
		case p > bullishAbove:
			bullish++
		case p < bearishBelow:
			bearish++
		default:
			neutral++
		}
	}

	total := bullish + neutral + bearish
	if total == 0 {
		third := 1.0 / 3.0
		return model.SentimentScore{Positive: third, Neutral: third, Negative: third}
	}

	return model.SentimentScore{
		Positive: float64(bullish) / float64(total),
		Neutral:  float64(neutral) / float64(total),
		Negative: float64(bearish) / float64(total),
	}
}
