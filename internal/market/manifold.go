package market

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/source"
)

// Manifold fetches markets from Manifold's public API
// (https://manifold.markets/docs/api).
type Manifold struct {
	baseURL string
	client  *source.Client
}

// manifoldMarket is the wire shape of one Manifold market.
type manifoldMarket struct {
	ID              string   `json:"id"`
	Question        string   `json:"question"`
	CreatorUsername string   `json:"creatorUsername"`
	Slug            string   `json:"slug"`
	OutcomeType     string   `json:"outcomeType"` // "BINARY", "MULTIPLE_CHOICE", ...
	Probability     *float64 `json:"probability"` // 0-1, binary markets only
	Volume24Hours   *float64 `json:"volume24Hours"`
	Elasticity      *float64 `json:"elasticity"`
	UniqueBettors   *int     `json:"uniqueBettorCount"`
	CloseTimeMillis *int64   `json:"closeTime"`
	TextDescription string   `json:"textDescription"`
}

// NewManifold creates a Manifold client.
func NewManifold(baseURL string, client *source.Client) *Manifold {
	return &Manifold{baseURL: baseURL, client: client}
}

// Name returns the platform id.
func (m *Manifold) Name() string {
	return "manifold"
}

// Trending lists current markets. Manifold's listing endpoint has no
// category filter, so the category is matched against the question text as
// a best effort.
func (m *Manifold) Trending(ctx context.Context, category string, limit int) ([]model.Market, error) {
	endpoint := fmt.Sprintf("%s/v0/markets?limit=%d", m.baseURL, limit)

	var raw []manifoldMarket
	if err := m.client.GetJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("manifold markets: %w", err)
	}

	markets := mapManifold(raw)
	if category != "" {
		markets = filterByTitle(markets, category)
	}
	return markets, nil
}

// Search queries Manifold's market search.
func (m *Manifold) Search(ctx context.Context, query string, limit int) ([]model.Market, error) {
	endpoint := fmt.Sprintf("%s/v0/search-markets?term=%s&limit=%d",
		m.baseURL, url.QueryEscape(query), limit)

	var raw []manifoldMarket
	if err := m.client.GetJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("manifold search: %w", err)
	}
	return mapManifold(raw), nil
}

func mapManifold(raw []manifoldMarket) []model.Market {
	markets := make([]model.Market, 0, len(raw))
	for _, r := range raw {
		if r.Question == "" {
			continue
		}

		// Only binary markets carry a headline YES probability.
		var prob *float64
		var outcomes []model.Outcome
		if r.OutcomeType == "BINARY" && r.Probability != nil {
			p := *r.Probability * 100
			prob = &p
			yes, no := *r.Probability, 1-*r.Probability
			outcomes = []model.Outcome{
				{Name: "YES", Probability: pctPtr(yes), Price: &yes},
				{Name: "NO", Probability: pctPtr(no), Price: &no},
			}
		}

		markets = append(markets, model.Market{
			Title:       r.Question,
			Platform:    "manifold",
			URL:         fmt.Sprintf("https://manifold.markets/%s/%s", r.CreatorUsername, slugOrID(r)),
			Probability: prob,
			Volume:      r.Volume24Hours,
			Outcomes:    outcomes,
			Traders:     r.UniqueBettors,
			Description: r.TextDescription,
			Liquidity:   r.Elasticity,
			EndDate:     millisToTime(r.CloseTimeMillis),
		})
	}
	return markets
}

func slugOrID(r manifoldMarket) string {
	if r.Slug != "" {
		return r.Slug
	}
	return r.ID
}

func pctPtr(p float64) *float64 {
	v := p * 100
	return &v
}

func millisToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func filterByTitle(markets []model.Market, needle string) []model.Market {
	needle = strings.ToLower(needle)
	var out []model.Market
	for _, m := range markets {
		if strings.Contains(strings.ToLower(m.Title), needle) ||
			strings.Contains(strings.ToLower(m.Category), needle) {
			out = append(out, m)
		}
	}
	return out
}
