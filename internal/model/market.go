package model

import "time"

// Market is a forecasting instrument with one or more priced outcomes and an
// implied probability for its main bullish outcome.
type Market struct {
	Title       string     `json:"title"`
	Platform    string     `json:"platform"`
	URL         string     `json:"url,omitempty"`
	Probability *float64   `json:"probability"`           // 0-100, nil when the platform exposes none
	Volume      *float64   `json:"volume"`                // Trading volume, platform units
	Category    string     `json:"category,omitempty"`
	Outcomes    []Outcome  `json:"outcomes,omitempty"`
	Traders     *int       `json:"traders,omitempty"`
	Description string     `json:"description,omitempty"`
	Liquidity   *float64   `json:"liquidity,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Outcome is one priced side of a market. Probability is kept on a 0-100
// scale, Price on 0-1; when both are present probability ≈ round(price*100).
type Outcome struct {
	Name        string   `json:"name"`
	Probability *float64 `json:"probability,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// Completeness scores how much optional data a market record carries. Used
// by deduplication: on a title collision the record with more data wins.
func (m Market) Completeness() int {
	n := len(m.Outcomes)
	if m.Probability != nil {
		n++
	}
	if m.Volume != nil {
		n++
	}
	if m.Traders != nil {
		n++
	}
	if m.Description != "" {
		n++
	}
	return n
}

// VolumeOrZero returns the market volume, treating missing as zero.
func (m Market) VolumeOrZero() float64 {
	if m.Volume == nil {
		return 0
	}
	return *m.Volume
}

// MarketSnapshot is the aggregated, deduplicated market set returned by the
// market operations, with collection metadata.
type MarketSnapshot struct {
	Markets  []Market       `json:"markets"`
	Metadata MarketMetadata `json:"metadata"`
}

// MarketMetadata describes one market collection pass.
type MarketMetadata struct {
	TotalMarkets int       `json:"total_markets"`
	Platforms    []string  `json:"platforms"`
	ScrapedAt    time.Time `json:"scraped_at"`
}
