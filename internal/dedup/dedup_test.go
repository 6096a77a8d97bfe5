package dedup

import (
	"strings"
	"testing"

	"github.com/pmorozov/signalmesh/internal/model"
)

func fptr(v float64) *float64 { return &v }

func marketTitle(m model.Market) string { return m.Title }
func marketScore(m model.Market) int { return m.Completeness() }

func TestKey_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"lowercase", "Will BTC Hit $100k?", "will btc hit 100k"},
		{"collapse whitespace", "fed   rate\tdecision", "fed rate decision"},
		{"strip punctuation", "Trump vs. Harris: 2024!", "trump vs harris 2024"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.title); got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestKey_Truncation(t *testing.T) {
	long := strings.Repeat("a", 200)
	if got := Key(long); len(got) != 80 {
		t.Errorf("expected 80-character key, got %d characters", len(got))
	}
}

func TestDedupe_RicherRecordWins(t *testing.T) {
	poor := model.Market{Title: "Will BTC hit 100k?", Platform: "manifold"}
	rich := model.Market{
		Title:       "Will BTC hit $100K",
		Platform:    "polymarket",
		Probability: fptr(62),
		Volume:      fptr(120000),
		Description: "Resolves YES if BTC trades at or above 100k.",
	}

	// Arrival order must not matter.
	for _, items := range [][]model.Market{{poor, rich}, {rich, poor}} {
		got := Dedupe(items, marketTitle, marketScore)
		if len(got) != 1 {
			t.Fatalf("expected 1 market after dedupe, got %d", len(got))
		}
		if got[0].Platform != "polymarket" {
			t.Errorf("expected richer polymarket record to win, got %q", got[0].Platform)
		}
	}
}

func TestDedupe_DistinctTitlesSurvive(t *testing.T) {
	items := []model.Market{
		{Title: "Will BTC hit 100k?"},
		{Title: "Will ETH hit 10k?"},
		{Title: "Fed rate cut in March"},
	}

	got := Dedupe(items, marketTitle, marketScore)
	if len(got) != 3 {
		t.Errorf("expected 3 distinct markets, got %d", len(got))
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	items := []model.Market{
		{Title: "Will BTC hit 100k?", Probability: fptr(60)},
		{Title: "Will BTC hit 100k!", Volume: fptr(500)},
		{Title: "Fed rate cut in March"},
		{Title: "fed RATE cut in march", Description: "CPI print pending."},
	}

	once := Dedupe(items, marketTitle, marketScore)
	twice := Dedupe(once, marketTitle, marketScore)

	if len(once) != len(twice) {
		t.Fatalf("dedupe not idempotent: %d then %d records", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("record %d changed on second pass: %q vs %q", i, once[i].Title, twice[i].Title)
		}
	}
}

func TestDedupe_LongPrefixCollision(t *testing.T) {
	// Documented behavior: titles sharing an 80-character normalized prefix
	// collide even if they differ beyond it.
	prefix := strings.Repeat("x", 85)
	a := model.Market{Title: prefix + " alpha", Probability: fptr(50)}
	b := model.Market{Title: prefix + " beta"}

	got := Dedupe([]model.Market{a, b}, marketTitle, marketScore)
	if len(got) != 1 {
		t.Errorf("expected prefix collision to merge records, got %d", len(got))
	}
}

func TestDedupe_Empty(t *testing.T) {
	if got := Dedupe(nil, marketTitle, marketScore); len(got) != 0 {
		t.Errorf("expected empty result for nil input, got %d", len(got))
	}
}
