package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmorozov/signalmesh/internal/worker"
)

var (
	batchWorkers int
	batchSources []string
	batchDays    int
	batchOutDir  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Research multiple topics from a file in parallel",
	Long: `Batch reads topics from a file (one per line, # comments skipped)
and researches them concurrently. Each topic produces its own JSON report
in the output directory; one topic failing does not stop the others.

Example:
  signalmesh batch topics.txt
  signalmesh batch topics.txt --workers 8 --output-dir ./reports
  signalmesh batch topics.txt --sources reddit,web --days 14`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "number of concurrent topic researches (default from config)")
	batchCmd.Flags().StringSliceVar(&batchSources, "sources", nil, "sources to query (default: all enabled)")
	batchCmd.Flags().IntVar(&batchDays, "days", 0, "lookback window in days (default from config)")
	batchCmd.Flags().StringVar(&batchOutDir, "output-dir", "./signalmesh-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	agg, err := buildAggregator(cfg, logger)
	if err != nil {
		return err
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Concurrency.BatchWorkers
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	processor := worker.NewBatchProcessor(agg, batchSources, batchDays, workers)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	var succeeded, failed int
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Topic, result.Error)
			continue
		}

		path := filepath.Join(batchOutDir, topicSlug(result.Topic)+".json")
		if err := writeReportJSON(path, result.Report, cfg.Output.Pretty); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: write report: %v\n", result.Topic, err)
			continue
		}

		succeeded++
		fmt.Fprintf(os.Stderr, "ok   %s (%d patterns, %d/%d sources)\n",
			result.Topic, len(result.Report.Patterns),
			len(result.Report.Meta.SourcesUsed), result.Report.Meta.SourcesChecked)
	}

	fmt.Fprintf(os.Stderr, "\nbatch complete: %d ok, %d failed, output in %s\n", succeeded, failed, batchOutDir)

	if succeeded == 0 && failed > 0 {
		return fmt.Errorf("all %d topics failed", failed)
	}
	return nil
}

func writeReportJSON(path string, v any, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// topicSlug turns a topic into a safe file name.
func topicSlug(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "topic"
	}
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}
