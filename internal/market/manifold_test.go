package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pmorozov/signalmesh/internal/model"
	"github.com/pmorozov/signalmesh/internal/source"
)

func testClient() *source.Client {
	return source.NewClient(model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1 << 20,
		RatePerHost:  100,
		RateBurst:    10,
	})
}

func TestManifold_Trending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[
			{
				"id": "m1",
				"question": "Will BTC hit 100k this year?",
				"creatorUsername": "alice",
				"slug": "btc-100k",
				"outcomeType": "BINARY",
				"probability": 0.62,
				"volume24Hours": 1500.5,
				"uniqueBettorCount": 42,
				"closeTime": 1767225600000
			},
			{
				"id": "m2",
				"question": "Who wins the cup?",
				"creatorUsername": "bob",
				"slug": "cup-winner",
				"outcomeType": "MULTIPLE_CHOICE",
				"volume24Hours": 90
			}
		]`)
	}))
	defer server.Close()

	client := NewManifold(server.URL, testClient())
	markets, err := client.Trending(context.Background(), "", 200)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(markets) != 2 {
		t.Fatalf("expected 2 markets, got %d", len(markets))
	}

	binary := markets[0]
	if binary.Probability == nil || *binary.Probability != 62 {
		t.Errorf("expected probability 62, got %v", binary.Probability)
	}
	if binary.Platform != "manifold" {
		t.Errorf("expected platform manifold, got %q", binary.Platform)
	}
	if len(binary.Outcomes) != 2 || binary.Outcomes[0].Name != "YES" {
		t.Errorf("expected YES/NO outcomes, got %+v", binary.Outcomes)
	}
	if binary.Traders == nil || *binary.Traders != 42 {
		t.Errorf("expected 42 traders, got %v", binary.Traders)
	}
	if binary.EndDate == nil {
		t.Error("expected close time mapped to end date")
	}

	multi := markets[1]
	if multi.Probability != nil {
		t.Errorf("non-binary market should carry no headline probability, got %v", *multi.Probability)
	}
}

func TestManifold_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/search-markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("term"); got != "bitcoin" {
			t.Errorf("unexpected term %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[{"id": "m1", "question": "BTC up?", "outcomeType": "BINARY", "probability": 0.5}]`)
	}))
	defer server.Close()

	client := NewManifold(server.URL, testClient())
	markets, err := client.Search(context.Background(), "bitcoin", 50)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(markets) != 1 {
		t.Errorf("expected 1 market, got %d", len(markets))
	}
}

func TestManifold_ServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewManifold(server.URL, testClient())
	if _, err := client.Trending(context.Background(), "", 10); err == nil {
		t.Error("expected error for 500 response")
	}
}
