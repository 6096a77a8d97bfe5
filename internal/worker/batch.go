package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pmorozov/signalmesh/internal/model"
)

// Researcher runs a single-topic research pass.
type Researcher interface {
	ResearchTopic(ctx context.Context, topic string, sourceIDs []string, days int, region string) (*model.ResearchReport, error)
}

// ResearchJob researches one topic.
type ResearchJob struct {
	Topic      string
	SourceIDs  []string
	Days       int
	Researcher Researcher
}

// Execute runs the research pass and wraps its outcome.
func (j *ResearchJob) Execute(ctx context.Context) Result {
	report, err := j.Researcher.ResearchTopic(ctx, j.Topic, j.SourceIDs, j.Days, "")
	return &ResearchResult{
		Topic:  j.Topic,
		Report: report,
		Error:  err,
	}
}

// ResearchResult pairs a topic with its report or failure.
type ResearchResult struct {
	Topic  string
	Report *model.ResearchReport
	Error  error
}

// GetError returns the error from the research pass.
func (r *ResearchResult) GetError() error {
	return r.Error
}

// BatchProcessor researches multiple topics concurrently.
type BatchProcessor struct {
	researcher  Researcher
	sourceIDs   []string
	days        int
	concurrency int
}

// NewBatchProcessor creates a batch processor. The source list and day window
// apply to every topic in the batch.
func NewBatchProcessor(researcher Researcher, sourceIDs []string, days, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		researcher:  researcher,
		sourceIDs:   sourceIDs,
		days:        days,
		concurrency: concurrency,
	}
}

// ProcessTopics researches the given topics concurrently. One topic failing
// does not stop the others; each result carries its own error.
func (b *BatchProcessor) ProcessTopics(ctx context.Context, topics []string) []*ResearchResult {
	if len(topics) == 0 {
		return []*ResearchResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, topic := range topics {
		pool.Submit(&ResearchJob{
			Topic:      topic,
			SourceIDs:  b.sourceIDs,
			Days:       b.days,
			Researcher: b.researcher,
		})
	}

	results := pool.Wait()

	out := make([]*ResearchResult, len(results))
	for i, result := range results {
		out[i] = result.(*ResearchResult)
	}

	return out
}

// ProcessFile reads topics from a file and researches them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ResearchResult, error) {
	topics, err := ReadTopicsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics: %w", err)
	}

	return b.ProcessTopics(ctx, topics), nil
}

// ReadTopicsFromFile reads topics from a file, one per line. Blank lines and
// lines starting with # are skipped, and duplicate topics are collapsed.
func ReadTopicsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var topics []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			topics = append(topics, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return topics, nil
}
