package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	researchSources []string
	researchDays    int
	researchTimeout time.Duration
)

// researchCmd represents the research command
var researchCmd = &cobra.Command{
	Use:   "research <topic>",
	Short: "Research a topic across social and web sources",
	Long: `Research collects evidence for a topic from every enabled source
concurrently, then synthesizes:
- Cross-source patterns with corroborating evidence
- Lexicon sentiment, overall and per source
- The most engaged discussions
- Emerging topics that have not spread across platforms yet

A source that fails or times out is reported in the result metadata; it
never fails the run.

Example:
  signalmesh research "bitcoin etf"
  signalmesh research ai --sources reddit,youtube --days 14`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)

	researchCmd.Flags().StringSliceVar(&researchSources, "sources", nil, "sources to query (default: all enabled)")
	researchCmd.Flags().IntVar(&researchDays, "days", 0, "lookback window in days (default from config)")
	researchCmd.Flags().DurationVar(&researchTimeout, "timeout", 2*time.Minute, "overall research timeout")
}

func runResearch(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), researchTimeout)
	defer cancel()

	report, err := agg.ResearchTopic(ctx, topic, researchSources, researchDays, cfg.Research.Region)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "sources used: %d/%d, patterns: %d\n",
			len(report.Meta.SourcesUsed), report.Meta.SourcesChecked, len(report.Patterns))
	}

	return printJSON(report, cfg.Output.Pretty)
}
