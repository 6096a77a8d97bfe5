// Package market provides clients for public prediction-market platforms.
// Each client decodes its platform's wire shape with typed
// parse-with-fallback mapping; fields that cannot be mapped are simply left
// nil rather than guessed at.
package market

import (
	"context"

	"github.com/pmorozov/signalmesh/internal/model"
)

// Client is one prediction-market platform.
type Client interface {
	// Name returns the platform id (e.g. "manifold").
	Name() string

	// Trending returns the platform's current markets, optionally filtered
	// by category, at most limit.
	Trending(ctx context.Context, category string, limit int) ([]model.Market, error)

	// Search returns markets matching the query, at most limit.
	Search(ctx context.Context, query string, limit int) ([]model.Market, error)
}
