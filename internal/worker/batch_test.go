package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pmorozov/signalmesh/internal/model"
)

type fakeResearcher struct {
	failTopic string
}

func (f *fakeResearcher) ResearchTopic(ctx context.Context, topic string, sourceIDs []string, days int, region string) (*model.ResearchReport, error) {
	if topic == f.failTopic {
		return nil, errors.New("source outage")
	}
	return &model.ResearchReport{Topic: topic}, nil
}

func TestBatchProcessor_ProcessTopics(t *testing.T) {
	b := NewBatchProcessor(&fakeResearcher{}, nil, 7, 2)

	results := b.ProcessTopics(context.Background(), []string{"bitcoin", "ai", "climate"})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	var topics []string
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("unexpected error for %q: %v", r.Topic, r.Error)
		}
		if r.Report == nil || r.Report.Topic != r.Topic {
			t.Errorf("result for %q carries wrong report", r.Topic)
		}
		topics = append(topics, r.Topic)
	}

	sort.Strings(topics)
	want := []string{"ai", "bitcoin", "climate"}
	for i, topic := range want {
		if topics[i] != topic {
			t.Errorf("missing topic %q in results", topic)
		}
	}
}

func TestBatchProcessor_OneFailureDoesNotStopOthers(t *testing.T) {
	b := NewBatchProcessor(&fakeResearcher{failTopic: "ai"}, nil, 7, 2)

	results := b.ProcessTopics(context.Background(), []string{"bitcoin", "ai"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		switch r.Topic {
		case "ai":
			if r.Error == nil {
				t.Error("expected error for failed topic")
			}
		case "bitcoin":
			if r.Error != nil {
				t.Errorf("unexpected error: %v", r.Error)
			}
		}
	}
}

func TestBatchProcessor_EmptyTopics(t *testing.T) {
	b := NewBatchProcessor(&fakeResearcher{}, nil, 7, 2)

	results := b.ProcessTopics(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadTopicsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.txt")
	content := "bitcoin\n\n# a comment\nai\nbitcoin\n  climate  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	topics, err := ReadTopicsFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"bitcoin", "ai", "climate"}
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %d: %v", len(want), len(topics), topics)
	}
	for i, topic := range want {
		if topics[i] != topic {
			t.Errorf("topics[%d] = %q, want %q", i, topics[i], topic)
		}
	}
}

func TestReadTopicsFromFile_Missing(t *testing.T) {
	if _, err := ReadTopicsFromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.txt")
	if err := os.WriteFile(path, []byte("bitcoin\nai\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBatchProcessor(&fakeResearcher{}, []string{"reddit"}, 7, 2)
	results, err := b.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}
