package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPolymarket_Trending_BareList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[
			{
				"id": "e1",
				"title": "Presidential election winner",
				"slug": "election-winner",
				"category": "politics",
				"endDate": "2026-11-03T00:00:00Z",
				"markets": [
					{"id": "m1", "volume": "1000", "prices": ["0.4", "0.6"], "outcomes": "[\"Yes\",\"No\"]"},
					{"id": "m2", "volume": "90000", "liquidity": "5000", "description": "main market",
					 "prices": [0.65, 0.35], "outcomes": ["Yes", "No"]}
				]
			}
		]`)
	}))
	defer server.Close()

	client := NewPolymarket(server.URL, testClient())
	markets, err := client.Trending(context.Background(), "", 200)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("expected 1 market per event, got %d", len(markets))
	}

	m := markets[0]
	// The highest-volume market in the event is the headline market.
	if m.Volume == nil || *m.Volume != 90000 {
		t.Errorf("expected highest-volume market chosen, got volume %v", m.Volume)
	}
	if m.Probability == nil || *m.Probability != 65 {
		t.Errorf("expected probability 65 from first price, got %v", m.Probability)
	}
	if m.Category != "politics" {
		t.Errorf("expected category mapped, got %q", m.Category)
	}
	if len(m.Outcomes) != 2 || m.Outcomes[0].Name != "Yes" {
		t.Errorf("unexpected outcomes %+v", m.Outcomes)
	}
	if m.Outcomes[0].Probability == nil || *m.Outcomes[0].Probability != 65 {
		t.Errorf("expected outcome probability 65, got %v", m.Outcomes[0].Probability)
	}
	if m.EndDate == nil {
		t.Error("expected end date parsed")
	}
}

func TestPolymarket_Trending_Envelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"events": [
			{"id": "e1", "title": "Rate cut by March", "markets": [{"id": "m1", "volume": 500, "prices": [0.3]}]}
		]}`)
	}))
	defer server.Close()

	client := NewPolymarket(server.URL, testClient())
	markets, err := client.Trending(context.Background(), "", 200)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("expected 1 market from envelope shape, got %d", len(markets))
	}
	if markets[0].Probability == nil || *markets[0].Probability != 30 {
		t.Errorf("expected probability 30, got %v", markets[0].Probability)
	}
}

func TestPolymarket_SkipsUnmappableEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[
			{"id": "e1", "title": "", "markets": [{"id": "m1"}]},
			{"id": "e2", "title": "No markets here", "markets": []},
			{"id": "e3", "title": "Valid", "markets": [{"id": "m3", "volume": "oops", "prices": []}]}
		]`)
	}))
	defer server.Close()

	client := NewPolymarket(server.URL, testClient())
	markets, err := client.Trending(context.Background(), "", 200)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("expected only the valid event mapped, got %d", len(markets))
	}
	if markets[0].Title != "Valid" {
		t.Errorf("unexpected market %+v", markets[0])
	}
	if markets[0].Volume != nil {
		t.Errorf("unparseable volume should map to nil, got %v", *markets[0].Volume)
	}
	if markets[0].Probability != nil {
		t.Errorf("empty prices should map to nil probability, got %v", *markets[0].Probability)
	}
}

func TestPolymarket_SearchQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("title_contains"); got != "fed" {
			t.Errorf("unexpected title_contains %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewPolymarket(server.URL, testClient())
	markets, err := client.Search(context.Background(), "fed", 50)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(markets) != 0 {
		t.Errorf("expected empty result, got %d", len(markets))
	}
}
