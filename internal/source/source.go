// Package source defines the contract the core requires from its external
// scraping collaborators and provides the remote HTTP adapter that speaks
// to them. Adapters return ordinary failures as errors, never panic across
// the boundary; the orchestrator records failures per source.
package source

import (
	"context"
	"sort"
	"time"

	"github.com/pmorozov/signalmesh/internal/model"
)

// Source is one evidence adapter. Implementations must treat network and
// parse problems as returned errors; only contract violations may panic.
type Source interface {
	// Name returns the platform id (e.g. "reddit").
	Name() string

	// FetchEvidence collects evidence for a topic. The timeout bounds this
	// single call; on expiry the adapter returns the context error.
	FetchEvidence(ctx context.Context, topic string, timeout time.Duration) ([]model.EvidenceItem, error)
}

// TrendingSource is implemented by adapters that can also report what is
// trending in a region without a topic.
type TrendingSource interface {
	FetchTrending(ctx context.Context, region string) ([]model.EvidenceItem, error)
}

// Registry resolves source ids to adapters.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// NewRegistryFromConfig builds a registry with one remote adapter per
// enabled configured source, all sharing the given client.
func NewRegistryFromConfig(cfg map[string]model.SourceConfig, client *Client) *Registry {
	r := NewRegistry()
	for name, sc := range cfg {
		if !sc.Enabled {
			continue
		}
		r.Register(NewRemote(name, sc.BaseURL, client))
	}
	return r
}

// Register adds an adapter, replacing any previous adapter with that name.
func (r *Registry) Register(s Source) {
	r.sources[s.Name()] = s
}

// Lookup returns the adapter registered under id.
func (r *Registry) Lookup(id string) (Source, bool) {
	s, ok := r.sources[id]
	return s, ok
}

// Names returns the registered source ids, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
