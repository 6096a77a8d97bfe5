package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/source"
)

// Polymarket fetches events from Polymarket's public Gamma API. The schema
// is not officially stable; decoding is best-effort and fields that fail to
// map are left empty rather than failing the whole fetch.
type Polymarket struct {
	baseURL string
	client  *source.Client
}

// polymarketEvent is the wire shape of one Gamma event, which may carry
// several markets.
type polymarketEvent struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Slug     string             `json:"slug"`
	Category string             `json:"category"`
	EndDate  string             `json:"endDate"`
	Markets  []polymarketMarket `json:"markets"`
}

type polymarketMarket struct {
	ID          string      `json:"id"`
	Volume      flexFloat   `json:"volume"`
	Liquidity   flexFloat   `json:"liquidity"`
	Description string      `json:"description"`
	Prices      flexFloats  `json:"prices"`
	Outcomes    flexStrings `json:"outcomes"`
}

// flexFloat decodes a number that Gamma serves either bare or quoted.
// Unmappable values are dropped, not failed: the aggregator skips fields it
// cannot map.
type flexFloat struct {
	value *float64
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	f.value = &v
	return nil
}

// flexFloats decodes a list of numbers served bare, quoted, or as a
// JSON-encoded string of the whole list.
type flexFloats []float64

func (f *flexFloats) UnmarshalJSON(b []byte) error {
	var rawList []json.RawMessage
	if err := json.Unmarshal(b, &rawList); err == nil {
		out := make([]float64, 0, len(rawList))
		for _, raw := range rawList {
			s := strings.Trim(string(raw), `"`)
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				out = append(out, v)
			}
		}
		*f = out
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil && s != "" {
		var inner flexFloats
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*f = inner
		}
	}
	return nil
}

// flexStrings decodes a string list served either directly or as a
// JSON-encoded string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil && s != "" {
		var inner []string
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			*f = inner
		}
	}
	return nil
}

// NewPolymarket creates a Polymarket Gamma client.
func NewPolymarket(baseURL string, client *source.Client) *Polymarket {
	return &Polymarket{baseURL: baseURL, client: client}
}

// Name returns the platform id.
func (p *Polymarket) Name() string {
	return "polymarket"
}

// Trending lists open events, optionally filtered by category tag.
func (p *Polymarket) Trending(ctx context.Context, category string, limit int) ([]model.Market, error) {
	endpoint := fmt.Sprintf("%s/events?includeClosedMarkets=false&limit=%d", p.baseURL, limit)
	if category != "" {
		endpoint += "&tag=" + url.QueryEscape(category)
	}
	return p.fetchEvents(ctx, endpoint)
}

// Search lists open events whose title matches the query.
func (p *Polymarket) Search(ctx context.Context, query string, limit int) ([]model.Market, error) {
	endpoint := fmt.Sprintf("%s/events?includeClosedMarkets=false&limit=%d&title_contains=%s",
		p.baseURL, limit, url.QueryEscape(query))
	return p.fetchEvents(ctx, endpoint)
}

func (p *Polymarket) fetchEvents(ctx context.Context, endpoint string) ([]model.Market, error) {
	// Some deployments return a bare event list, others an envelope.
	var raw json.RawMessage
	if err := p.client.GetJSON(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("polymarket events: %w", err)
	}

	events, err := decodeEvents(raw)
	if err != nil {
		return nil, fmt.Errorf("polymarket events: %w", err)
	}

	markets := make([]model.Market, 0, len(events))
	for _, e := range events {
		if m, ok := mapPolymarketEvent(e); ok {
			markets = append(markets, m)
		}
	}
	return markets, nil
}

func decodeEvents(raw json.RawMessage) ([]polymarketEvent, error) {
	var list []polymarketEvent
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Events []polymarketEvent `json:"events"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return envelope.Events, nil
}

// mapPolymarketEvent flattens an event to its main market: the one with the
// highest volume, matching how the platform itself headlines events.
func mapPolymarketEvent(e polymarketEvent) (model.Market, bool) {
	if e.Title == "" || len(e.Markets) == 0 {
		return model.Market{}, false
	}

	best := e.Markets[0]
	for _, m := range e.Markets[1:] {
		if volumeOf(m) > volumeOf(best) {
			best = m
		}
	}

	var prob *float64
	if len(best.Prices) > 0 {
		v := best.Prices[0] * 100
		prob = &v
	}

	return model.Market{
		Title:       e.Title,
		Platform:    "polymarket",
		URL:         "https://polymarket.com/event/" + slugOrEventID(e),
		Probability: prob,
		Volume:      best.Volume.value,
		Category:    e.Category,
		Outcomes:    mapOutcomes(best),
		Description: best.Description,
		Liquidity:   best.Liquidity.value,
		EndDate:     parseISO(e.EndDate),
	}, true
}

func mapOutcomes(m polymarketMarket) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(m.Outcomes))
	for i, name := range m.Outcomes {
		o := model.Outcome{Name: name}
		if i < len(m.Prices) {
			price := m.Prices[i]
			pct := price * 100
			o.Price = &price
			o.Probability = &pct
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func volumeOf(m polymarketMarket) float64 {
	if m.Volume.value == nil {
		return 0
	}
	return *m.Volume.value
}

func slugOrEventID(e polymarketEvent) string {
	if e.Slug != "" {
		return e.Slug
	}
	return e.ID
}

func parseISO(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
