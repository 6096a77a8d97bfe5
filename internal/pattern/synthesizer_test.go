package pattern

import (
	"fmt"
	"testing"

	"github.com/pmorozov/signalmesh/internal/model"
)

func item(platform, title, url string, engagement int64) model.EvidenceItem {
	return model.EvidenceItem{Platform: platform, Title: title, URL: url, Engagement: engagement}
}

func TestSynthesize_RequiresCorroboration(t *testing.T) {
	// A keyword mentioned once never becomes a pattern.
	evidence := []model.EvidenceItem{
		item("reddit", "quantum computing milestone", "https://r/1", 100),
		item("youtube", "cooking pasta tonight", "https://y/1", 2000),
	}

	patterns := Synthesize(evidence)
	if len(patterns) != 0 {
		t.Errorf("expected no patterns without corroboration, got %d", len(patterns))
	}
}

func TestSynthesize_EmptyAndTinyPools(t *testing.T) {
	if got := Synthesize(nil); len(got) != 0 {
		t.Errorf("expected empty result for empty pool, got %d patterns", len(got))
	}
	single := []model.EvidenceItem{item("reddit", "solo mention", "https://r/1", 5)}
	if got := Synthesize(single); len(got) != 0 {
		t.Errorf("expected empty result for single-item pool, got %d patterns", len(got))
	}
}

func TestSynthesize_StrengthTiers(t *testing.T) {
	evidence := []model.EvidenceItem{
		item("reddit", "bitcoin rally continues", "https://r/1", 500),
		item("youtube", "bitcoin explained", "https://y/1", 300),
		item("twitter", "bitcoin all time high", "https://t/1", 200),
	}

	patterns := Synthesize(evidence)
	if len(patterns) == 0 {
		t.Fatal("expected at least one pattern")
	}

	p := patterns[0]
	if p.Keyword != "bitcoin" {
		t.Errorf("expected 'bitcoin' as top pattern, got %q", p.Keyword)
	}
	if p.Strength != model.StrengthEstablished {
		t.Errorf("expected established strength for 3 platforms, got %q", p.Strength)
	}
	if len(p.Sources) != 3 {
		t.Errorf("expected 3 sources, got %v", p.Sources)
	}
}

func TestSynthesize_SinglePlatformOnlyEmerging(t *testing.T) {
	evidence := []model.EvidenceItem{
		item("reddit", "ethereum merge update", "https://r/1", 10),
		item("reddit", "ethereum gas fees drop", "https://r/2", 20),
		item("reddit", "ethereum staking guide", "https://r/3", 30),
	}

	for _, p := range Synthesize(evidence) {
		if p.Strength != model.StrengthEmerging {
			t.Errorf("pattern %q: expected emerging for single-platform pool, got %q", p.Keyword, p.Strength)
		}
	}
}

func TestSynthesize_DiversityOutranksEngagement(t *testing.T) {
	// "viral" has huge single-platform engagement; "steady" spans two
	// platforms with modest engagement and must rank first.
	evidence := []model.EvidenceItem{
		item("reddit", "viral clip everyone watched", "https://r/1", 900000),
		item("reddit", "viral clip reaction thread", "https://r/2", 800000),
		item("reddit", "steady progress report", "https://r/3", 10),
		item("youtube", "steady growth analysis", "https://y/1", 20),
	}

	patterns := Synthesize(evidence)
	if len(patterns) < 2 {
		t.Fatalf("expected at least 2 patterns, got %d", len(patterns))
	}
	if patterns[0].Keyword != "steady" {
		t.Errorf("expected cross-platform 'steady' ranked first, got %q", patterns[0].Keyword)
	}
	if patterns[0].Strength != model.StrengthGrowing {
		t.Errorf("expected growing strength for 2 platforms, got %q", patterns[0].Strength)
	}
}

func TestSynthesize_DisjointEvidenceURLs(t *testing.T) {
	// Items sharing several keywords must not spawn overlapping patterns.
	evidence := []model.EvidenceItem{
		item("reddit", "bitcoin etf approval imminent", "https://r/1", 100),
		item("youtube", "bitcoin etf approval explained", "https://y/1", 200),
		item("twitter", "bitcoin etf approval reactions", "https://t/1", 300),
	}

	patterns := Synthesize(evidence)
	seen := make(map[string]string)
	for _, p := range patterns {
		for _, e := range p.Evidence {
			if prev, dup := seen[e.URL]; dup {
				t.Errorf("url %s claimed by both %q and %q", e.URL, prev, p.Keyword)
			}
			seen[e.URL] = p.Keyword
		}
	}
}

func TestSynthesize_SkipsFullyClaimedCandidates(t *testing.T) {
	// All three items back both "bitcoin" and "etf". The winner claims all
	// three urls; the loser has nothing unclaimed left and is skipped.
	evidence := []model.EvidenceItem{
		item("reddit", "bitcoin etf news", "https://r/1", 100),
		item("youtube", "bitcoin etf news", "https://y/1", 200),
		item("twitter", "bitcoin etf news", "https://t/1", 300),
	}

	patterns := Synthesize(evidence)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern after claiming, got %d: %v", len(patterns), keywords(patterns))
	}
	if patterns[0].Keyword != "bitcoin" {
		t.Errorf("expected lexicographically first tied keyword to win, got %q", patterns[0].Keyword)
	}
}

func TestSynthesize_EvidenceCapAndOrder(t *testing.T) {
	var evidence []model.EvidenceItem
	for i := 0; i < 8; i++ {
		evidence = append(evidence, item("reddit",
			"solar breakthrough announced",
			fmt.Sprintf("https://r/%d", i),
			int64(i*10)))
	}

	patterns := Synthesize(evidence)
	if len(patterns) == 0 {
		t.Fatal("expected at least one pattern")
	}

	p := patterns[0]
	if len(p.Evidence) != 5 {
		t.Errorf("expected evidence capped at 5, got %d", len(p.Evidence))
	}
	for i := 1; i < len(p.Evidence); i++ {
		if p.Evidence[i].Engagement > p.Evidence[i-1].Engagement {
			t.Errorf("evidence not sorted by engagement descending at index %d", i)
		}
	}
}

func TestSynthesize_PatternCap(t *testing.T) {
	// 15 distinct keyword pairs, each corroborated by two items with
	// disjoint urls, should still cap at 10 patterns.
	var evidence []model.EvidenceItem
	for i := 0; i < 15; i++ {
		kw := fmt.Sprintf("topic%02d", i)
		evidence = append(evidence,
			item("reddit", kw+" discussion", fmt.Sprintf("https://r/%d", i), 10),
			item("youtube", kw+" video", fmt.Sprintf("https://y/%d", i), 10),
		)
	}

	patterns := Synthesize(evidence)
	if len(patterns) > 10 {
		t.Errorf("expected at most 10 patterns, got %d", len(patterns))
	}
}

func TestSynthesizeWith_ThreadsClaimedSet(t *testing.T) {
	evidence := []model.EvidenceItem{
		item("reddit", "fusion energy record", "https://r/1", 10),
		item("youtube", "fusion energy record", "https://y/1", 20),
	}

	// Pre-claim one url; the pattern must only carry the other.
	claimed := map[string]struct{}{"https://r/1": {}}
	patterns, claimed := SynthesizeWith(evidence, claimed)

	for _, p := range patterns {
		for _, e := range p.Evidence {
			if e.URL == "https://r/1" {
				t.Errorf("pattern %q reused a pre-claimed url", p.Keyword)
			}
		}
	}
	if _, ok := claimed["https://y/1"]; len(patterns) > 0 && !ok {
		t.Error("expected newly claimed url in returned set")
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	evidence := []model.EvidenceItem{
		item("reddit", "alpha beta gamma", "https://r/1", 50),
		item("youtube", "alpha beta delta", "https://y/1", 50),
		item("twitter", "beta gamma delta", "https://t/1", 50),
	}

	first := keywords(Synthesize(evidence))
	for i := 0; i < 5; i++ {
		if got := keywords(Synthesize(evidence)); !equal(first, got) {
			t.Fatalf("synthesis not deterministic: %v vs %v", first, got)
		}
	}
}

func keywords(patterns []model.Pattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.Keyword
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
