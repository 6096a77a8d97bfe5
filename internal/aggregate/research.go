package aggregate

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/pattern"
	"github.com/pmorozov/signalmesh/internal/sentiment"
)

const maxTopDiscussions = 10

// BriefGenerator renders an optional post-synthesis brief. It runs after
// the report is complete and can never change it.
type BriefGenerator interface {
	Generate(ctx context.Context, report model.ResearchReport) (*model.Brief, error)
}

// SetBriefGenerator enables brief generation on research results.
func (a *Aggregator) SetBriefGenerator(g BriefGenerator) {
	a.brief = g
}

// ResearchTopic collects evidence for a topic across the requested sources
// and synthesizes patterns, sentiment, top discussions, and emerging topics.
// Partial source failure shrinks the evidence pool; it never fails the
// operation.
func (a *Aggregator) ResearchTopic(ctx context.Context, topic string, sourceIDs []string, days int, region string) (*model.ResearchReport, error) {
	if days <= 0 {
		days = a.cfg.Research.Days
	}

	collection, err := a.Collect(ctx, topic, sourceIDs, a.cfg.Research.PerSourceTimeout)
	if err != nil {
		return nil, err
	}

	merged := collection.Merged()
	patterns := pattern.Synthesize(merged)

	report := &model.ResearchReport{
		Topic:          topic,
		Timeframe:      fmt.Sprintf("%dd", days),
		Patterns:       patterns,
		Sentiment:      sentiment.Summarize(collection.ByPlatform),
		TopDiscussions: topDiscussions(merged),
		EmergingTopics: emergingTopics(patterns),
		Meta: model.ResearchMeta{
			SourcesChecked: collection.SourcesChecked,
			SourcesUsed:    collection.SourcesUsed(),
			FailedSources:  collection.Failed,
		},
	}

	if a.brief != nil {
		brief, err := a.brief.Generate(ctx, *report)
		if err != nil {
			// The brief is decoration; a provider hiccup never fails
			// the research pass.
			a.logger.Warn("brief generation failed", zap.Error(err))
		} else {
			report.Brief = brief
		}
	}

	return report, nil
}

// topDiscussions returns the most engaged evidence items across all
// platforms, capped at ten. The input order is stable, so equal engagement
// resolves by platform then arrival order.
func topDiscussions(merged []model.EvidenceItem) []model.EvidenceItem {
	ranked := make([]model.EvidenceItem, len(merged))
	copy(ranked, merged)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Engagement > ranked[j].Engagement
	})
	if len(ranked) > maxTopDiscussions {
		ranked = ranked[:maxTopDiscussions]
	}
	return ranked
}

// emergingTopics surfaces the keywords of single-platform patterns: themes
// with corroboration but no cross-platform spread yet.
func emergingTopics(patterns []model.Pattern) []string {
	var topics []string
	for _, p := range patterns {
		if p.Strength == model.StrengthEmerging {
			topics = append(topics, p.Keyword)
		}
	}
	return topics
}
