package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmorozov/signalmesh/internal/aggregate"
	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/signal"
)

var (
	signalsSources []string
	signalsTimeout time.Duration
)

// signalsCmd represents the signals command
var signalsCmd = &cobra.Command{
	Use:   "signals <topic>",
	Short: "Generate arbitrage and divergence signals for a topic",
	Long: `Signals researches a topic on social sources, finds matching
prediction markets, and compares the two:
- Arbitrage: the same question priced differently across market platforms
- Divergence: social sentiment running ahead of (or behind) market odds

Both signals are advisory observations, not trade recommendations.

Example:
  signalmesh signals "bitcoin etf"`,
	Args: cobra.ExactArgs(1),
	RunE: runSignals,
}

func init() {
	rootCmd.AddCommand(signalsCmd)

	signalsCmd.Flags().StringSliceVar(&signalsSources, "sources", nil, "sources to query (default: all enabled)")
	signalsCmd.Flags().DurationVar(&signalsTimeout, "timeout", 2*time.Minute, "overall signals timeout")
}

func runSignals(cmd *cobra.Command, args []string) error {
	topic := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	agg, err := buildAggregator(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), signalsTimeout)
	defer cancel()

	report, err := agg.ResearchTopic(ctx, topic, signalsSources, 0, cfg.Research.Region)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	snapshot, err := agg.SearchMarkets(ctx, topic, 0)
	if err != nil {
		return fmt.Errorf("market search failed: %w", err)
	}

	sig := aggregate.GenerateSignals(marketQuotes(snapshot.Markets), sentimentReadings(report.Sentiment))

	return printJSON(struct {
		Topic   string       `json:"topic"`
		Signals model.Signal `json:"signals"`
	}{Topic: topic, Signals: sig}, cfg.Output.Pretty)
}

// marketQuotes takes the highest-volume priced market from each platform,
// up to two platforms. Probabilities come back on a 0-100 scale and the
// signal math wants 0-1.
func marketQuotes(markets []model.Market) []signal.Quote {
	var quotes []signal.Quote
	seen := make(map[string]bool)
	for _, m := range markets {
		if m.Probability == nil || seen[m.Platform] {
			continue
		}
		seen[m.Platform] = true
		p := *m.Probability / 100
		quotes = append(quotes, signal.Quote{Source: m.Platform, Probability: &p})
		if len(quotes) == 2 {
			break
		}
	}
	return quotes
}

// sentimentReadings converts each source's sentiment score into a 0-1
// bullishness reading. Neutral splits evenly, so an all-neutral source
// reads as 0.5.
func sentimentReadings(summary model.SentimentSummary) []float64 {
	var readings []float64
	for _, score := range summary.BySource {
		readings = append(readings, score.Positive+0.5*score.Neutral)
	}
	return readings
}
