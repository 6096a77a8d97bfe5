package aggregate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pmorozov/signalmesh/internal/dedup"
	"github.com/pmorozov/signalmesh/internal/market"
	"github.com/pmorozov/signalmesh/internal/model"
)

// TrendingMarkets aggregates the current markets across every configured
// platform: concurrent fan-out, near-duplicate resolution on the normalized
// title, then a volume-descending cut. A failing platform is skipped, never
// fatal.
func (a *Aggregator) TrendingMarkets(ctx context.Context, category string, limit int) (*model.MarketSnapshot, error) {
	return a.collectMarkets(ctx, limit, func(c market.Client) ([]model.Market, error) {
		return c.Trending(ctx, category, a.cfg.Markets.PerSourceLimit)
	})
}

// SearchMarkets aggregates markets matching a query across every platform.
func (a *Aggregator) SearchMarkets(ctx context.Context, query string, limit int) (*model.MarketSnapshot, error) {
	if strings.TrimSpace(query) == "" {
		return nil, inputErrorf("query must not be empty")
	}
	return a.collectMarkets(ctx, limit, func(c market.Client) ([]model.Market, error) {
		return c.Search(ctx, query, a.cfg.Markets.PerSourceLimit)
	})
}

func (a *Aggregator) collectMarkets(ctx context.Context, limit int, fetch func(market.Client) ([]model.Market, error)) (*model.MarketSnapshot, error) {
	if len(a.markets) == 0 {
		return nil, inputErrorf("no market platforms configured")
	}

	type result struct {
		platform string
		markets  []model.Market
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
	)

	for _, client := range a.markets {
		wg.Add(1)
		go func(c market.Client) {
			defer wg.Done()

			markets, err := fetch(c)
			if err != nil {
				a.logger.Warn("market platform failed",
					zap.String("platform", c.Name()),
					zap.Error(err))
				return
			}

			mu.Lock()
			results = append(results, result{platform: c.Name(), markets: markets})
			mu.Unlock()
		}(client)
	}
	wg.Wait()

	// Merge in platform order for a deterministic dedup outcome.
	sort.Slice(results, func(i, j int) bool { return results[i].platform < results[j].platform })

	var merged []model.Market
	var platforms []string
	for _, r := range results {
		platforms = append(platforms, r.platform)
		merged = append(merged, r.markets...)
	}

	merged = filterLiquidity(merged, a.cfg.Markets.MinLiquidity)
	merged = dedup.Dedupe(merged,
		func(m model.Market) string { return m.Title },
		func(m model.Market) int { return m.Completeness() })

	// Volume descending as a simple importance proxy, stable on ties.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].VolumeOrZero() > merged[j].VolumeOrZero()
	})

	if limit <= 0 {
		limit = a.cfg.Markets.TopN
	}
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}

	return &model.MarketSnapshot{
		Markets: merged,
		Metadata: model.MarketMetadata{
			TotalMarkets: len(merged),
			Platforms:    platforms,
			ScrapedAt:    time.Now().UTC(),
		},
	}, nil
}

func filterLiquidity(markets []model.Market, min float64) []model.Market {
	if min <= 0 {
		return markets
	}
	kept := markets[:0]
	for _, m := range markets {
		if m.Liquidity != nil && *m.Liquidity >= min {
			kept = append(kept, m)
		}
	}
	return kept
}
