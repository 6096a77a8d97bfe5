// Package aggregate drives the concurrent collection fan-out and composes
// synthesis into the final results. It owns the error taxonomy of the call
// surface: input errors fail fast before any adapter runs, per-source
// failures are recorded and tolerated, and an empty result is a well-formed
// answer, not an error.
package aggregate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pmorozov/signalmesh/internal/market"
	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/source"
)

// Aggregator composes sources, market clients, and the synthesis pipeline.
type Aggregator struct {
	registry *source.Registry
	markets  []market.Client
	cfg      *model.Config
	logger   *zap.Logger
	brief    BriefGenerator
}

// New creates an aggregator. A nil logger disables logging.
func New(cfg *model.Config, registry *source.Registry, markets []market.Client, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		registry: registry,
		markets:  markets,
		cfg:      cfg,
		logger:   logger,
	}
}

// Collect runs one concurrent collection pass: every resolved adapter is
// launched at once, and the pass waits for all of them to finish (success,
// failure, or timeout) before composing the result. A failing or timed-out
// source contributes nothing and is recorded; it never aborts its siblings.
func (a *Aggregator) Collect(ctx context.Context, topic string, sourceIDs []string, perSourceTimeout time.Duration) (model.Collection, error) {
	if strings.TrimSpace(topic) == "" {
		return model.Collection{}, inputErrorf("topic must not be empty")
	}

	resolved, err := a.resolve(sourceIDs)
	if err != nil {
		return model.Collection{}, err
	}

	a.logger.Debug("collecting evidence",
		zap.String("topic", topic),
		zap.Int("sources", len(resolved)),
		zap.Duration("per_source_timeout", perSourceTimeout))

	return a.fanOut(resolved, func(s source.Source) ([]model.EvidenceItem, error) {
		return s.FetchEvidence(ctx, topic, perSourceTimeout)
	}), nil
}

// resolve maps source ids to adapters. Every id must resolve; an unknown id
// is an input error, not a silent skip. An empty id list requests all
// registered sources.
func (a *Aggregator) resolve(sourceIDs []string) ([]source.Source, error) {
	if len(sourceIDs) == 0 {
		sourceIDs = a.registry.Names()
	}

	resolved := make([]source.Source, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		s, ok := a.registry.Lookup(id)
		if !ok {
			return nil, inputErrorf("unknown source %q", id)
		}
		resolved = append(resolved, s)
	}
	if len(resolved) == 0 {
		return nil, inputErrorf("no sources available")
	}
	return resolved, nil
}

// fanOut launches one goroutine per adapter with no call blocking another's
// start, then blocks until every call has resolved. There is no early
// return on first success: composition must be deterministic given the
// timeout envelope, not a race.
func (a *Aggregator) fanOut(sources []source.Source, fetch func(source.Source) ([]model.EvidenceItem, error)) model.Collection {
	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		byPlatform = make(map[string][]model.EvidenceItem, len(sources))
		failed     []model.SourceFailure
	)

	for _, s := range sources {
		wg.Add(1)
		go func(s source.Source) {
			defer wg.Done()

			items, err := fetch(s)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.logger.Warn("source failed",
					zap.String("source", s.Name()),
					zap.Error(err))
				failed = append(failed, model.SourceFailure{
					Source: s.Name(),
					Reason: err.Error(),
				})
				return
			}
			byPlatform[s.Name()] = items
		}(s)
	}
	wg.Wait()

	dedupeURLs(byPlatform)
	sort.Slice(failed, func(i, j int) bool { return failed[i].Source < failed[j].Source })

	return model.Collection{
		ByPlatform:     byPlatform,
		Failed:         failed,
		SourcesChecked: len(sources),
	}
}

// dedupeURLs enforces the identity key within one collection pass: the
// first occurrence of a URL wins, with platforms visited in sorted order so
// the outcome does not depend on goroutine completion order.
func dedupeURLs(byPlatform map[string][]model.EvidenceItem) {
	platforms := make([]string, 0, len(byPlatform))
	for p := range byPlatform {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	seen := make(map[string]struct{})
	for _, p := range platforms {
		items := byPlatform[p]
		kept := items[:0]
		for _, item := range items {
			if _, dup := seen[item.URL]; dup {
				continue
			}
			seen[item.URL] = struct{}{}
			kept = append(kept, item)
		}
		byPlatform[p] = kept
	}
}
