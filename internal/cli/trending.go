package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	trendingRegion  string
	trendingSources []string
	trendingTimeout time.Duration
)

// trendingCmd represents the trending command
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show what is trending across platforms for a region",
	Long: `Trending queries every requested source for its current trending
items in a region and synthesizes the items that recur across platforms.

Sources that do not report trending are skipped and noted; they never
fail the run.

Example:
  signalmesh trending
  signalmesh trending --region DE --sources reddit,twitter`,
	Args: cobra.NoArgs,
	RunE: runTrending,
}

func init() {
	rootCmd.AddCommand(trendingCmd)

	trendingCmd.Flags().StringVar(&trendingRegion, "region", "", "region code (default from config)")
	trendingCmd.Flags().StringSliceVar(&trendingSources, "sources", nil, "sources to query (default: all enabled)")
	trendingCmd.Flags().DurationVar(&trendingTimeout, "timeout", time.Minute, "overall trending timeout")
}

func runTrending(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := context.WithTimeout(context.Background(), trendingTimeout)
	defer cancel()

	report, err := agg.CrossPlatformTrending(ctx, trendingRegion, trendingSources)
	if err != nil {
		return fmt.Errorf("trending failed: %w", err)
	}

	return printJSON(report, cfg.Output.Pretty)
}
