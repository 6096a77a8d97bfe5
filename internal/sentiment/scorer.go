// Package sentiment scores text corpora with fixed lexicons. This is plain
// word counting, not a statistical model: the split is always explainable
// from the lexicon hits alone.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/pmorozov/signalmesh/internal/model"
)

var (
	positiveWords = []string{
		"amazing", "bullish", "great", "excellent", "win", "breakthrough",
		"soar", "optimistic",
	}
	negativeWords = []string{
		"terrible", "bearish", "crash", "awful", "lose", "collapse",
		"plunge", "fear",
	}

	positiveRe = compileLexicon(positiveWords)
	negativeRe = compileLexicon(negativeWords)
)

// compileLexicon builds a whole-word, case-insensitive matcher for the
// lexicon. Word-boundary anchoring matters: "win" must not match inside
// "winter".
func compileLexicon(words []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

// Score splits a text corpus into positive/neutral/negative fractions by
// counting lexicon hits. Zero hits on both lexicons returns the fully
// neutral split {0, 1, 0}.
func Score(text string) model.SentimentScore {
	pos := len(positiveRe.FindAllString(text, -1))
	neg := len(negativeRe.FindAllString(text, -1))

	if pos+neg == 0 {
		return model.NeutralSentiment()
	}

	total := float64(pos + neg)
	return model.SentimentScore{
		Positive: float64(pos) / total,
		Neutral:  0,
		Negative: float64(neg) / total,
	}
}

// Label collapses a score into "positive", "negative" or "neutral". The
// winning side must lead by more than 0.1 to move off neutral.
func Label(s model.SentimentScore) string {
	switch {
	case s.Positive-s.Negative > 0.1:
		return "positive"
	case s.Negative-s.Positive > 0.1:
		return "negative"
	default:
		return "neutral"
	}
}

// Summarize scores evidence per platform and overall. The overall score is
// computed over the concatenated corpus, not averaged from per-source
// splits, so a platform with ten items weighs ten times a platform with one.
func Summarize(byPlatform map[string][]model.EvidenceItem) model.SentimentSummary {
	bySource := make(map[string]model.SentimentScore, len(byPlatform))
	var all strings.Builder

	for platform, items := range byPlatform {
		var corpus strings.Builder
		for _, item := range items {
			corpus.WriteString(item.Text())
			corpus.WriteString("\n")
		}
		bySource[platform] = Score(corpus.String())
		all.WriteString(corpus.String())
	}

	overall := Score(all.String())
	return model.SentimentSummary{
		Overall:  Label(overall),
		Score:    overall,
		BySource: bySource,
	}
}
