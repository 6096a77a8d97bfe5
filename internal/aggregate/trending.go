package aggregate

import (
	"context"
	"fmt"

	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/pattern"
	"github.com/pmorozov/signalmesh/internal/source"
)

// CrossPlatformTrending asks every requested source what is trending in a
// region and clusters the combined evidence into trends. A source that does
// not support trending is recorded as failed, same as an unreachable one.
func (a *Aggregator) CrossPlatformTrending(ctx context.Context, region string, sourceIDs []string) (*model.TrendingReport, error) {
	if region == "" {
		region = a.cfg.Research.Region
	}

	resolved, err := a.resolve(sourceIDs)
	if err != nil {
		return nil, err
	}

	collection := a.fanOut(resolved, func(s source.Source) ([]model.EvidenceItem, error) {
		ts, ok := s.(source.TrendingSource)
		if !ok {
			return nil, fmt.Errorf("source %q does not report trending", s.Name())
		}
		ctx, cancel := context.WithTimeout(ctx, a.cfg.Research.PerSourceTimeout)
		defer cancel()
		return ts.FetchTrending(ctx, region)
	})

	return &model.TrendingReport{
		Region:  region,
		Sources: collection.SourcesUsed(),
		Trends:  pattern.Synthesize(collection.Merged()),
	}, nil
}
