package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmorozov/signalmesh/internal/model"
)

var (
	marketCategory     string
	marketLimit        int
	marketMinLiquidity float64
	marketTimeout      time.Duration
)

// marketsCmd groups the prediction-market commands
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Query prediction markets across platforms",
	Long: `Markets queries Manifold and Polymarket concurrently, merges the
results, removes near-duplicate markets across platforms, and returns
them sorted by volume. A platform that fails is skipped; the snapshot is
built from whatever responded.`,
}

var marketsTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show high-volume markets across platforms",
	Long: `Trending fetches the most active markets from every platform.

Example:
  signalmesh markets trending
  signalmesh markets trending --category crypto --top-n 25`,
	Args: cobra.NoArgs,
	RunE: runMarketsTrending,
}

var marketsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search markets by title across platforms",
	Long: `Search finds markets whose titles match the query on every platform.

Example:
  signalmesh markets search "bitcoin"
  signalmesh markets search election --min-liquidity 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runMarketsSearch,
}

func init() {
	rootCmd.AddCommand(marketsCmd)
	marketsCmd.AddCommand(marketsTrendingCmd)
	marketsCmd.AddCommand(marketsSearchCmd)

	for _, cmd := range []*cobra.Command{marketsTrendingCmd, marketsSearchCmd} {
		cmd.Flags().IntVar(&marketLimit, "top-n", 0, "max markets to return (default from config)")
		cmd.Flags().Float64Var(&marketMinLiquidity, "min-liquidity", -1, "drop markets below this liquidity (default from config)")
		cmd.Flags().DurationVar(&marketTimeout, "timeout", time.Minute, "overall market query timeout")
	}
	marketsTrendingCmd.Flags().StringVar(&marketCategory, "category", "", "restrict to a category")
}

func runMarketsTrending(cmd *cobra.Command, args []string) error {
	return runMarketQuery(func(ctx context.Context, agg marketQuerier) (any, error) {
		return agg.TrendingMarkets(ctx, marketCategory, marketLimit)
	})
}

func runMarketsSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	return runMarketQuery(func(ctx context.Context, agg marketQuerier) (any, error) {
		return agg.SearchMarkets(ctx, query, marketLimit)
	})
}

type marketQuerier interface {
	TrendingMarkets(ctx context.Context, category string, limit int) (*model.MarketSnapshot, error)
	SearchMarkets(ctx context.Context, query string, limit int) (*model.MarketSnapshot, error)
}

func runMarketQuery(query func(context.Context, marketQuerier) (any, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if marketMinLiquidity >= 0 {
		cfg.Markets.MinLiquidity = marketMinLiquidity
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

	ctx, cancel := context.WithTimeout(context.Background(), marketTimeout)
	defer cancel()

	snapshot, err := query(ctx, agg)
	if err != nil {
		return fmt.Errorf("market query failed: %w", err)
	}

	return printJSON(snapshot, cfg.Output.Pretty)
}
