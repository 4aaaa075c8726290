// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/poiesic/sentable"
	"github.com/poiesic/sentable/ai"
	"github.com/poiesic/sentable/core"
	"github.com/poiesic/sentable/input"
	"github.com/poiesic/sentable/pipeline"
	"github.com/poiesic/sentable/report"
	"github.com/poiesic/sentable/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sentable",
		Usage: "Batch sentiment classification with partitioned result storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Classify a data set and persist the results",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "input-data",
						Usage: "Data set file name within the container",
						Value: "sentiment_data.json",
					},
					&cli.StringFlag{
						Name:  "container-name",
						Usage: "Directory holding input data sets",
						Value: "data",
					},
					&cli.StringFlag{
						Name:  "table-name",
						Usage: "Results table name",
						Value: "SentimentResults",
					},
					&cli.StringFlag{
						Name:  "classifier-host",
						Usage: "Classifier service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model-name",
						Usage: "Sentiment model name",
						Value: "cardiffnlp/twitter-roberta-base-sentiment-latest",
					},
					&cli.StringFlag{
						Name:  "text-field",
						Usage: "Record field holding the text to classify",
						Value: "text",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of texts per classifier call",
						Value: 16,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for classification and inserts",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
				},
			},
			{
				Name:   "summary",
				Usage:  "Print cumulative statistics for a results table",
				Action: summaryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "table-name",
						Usage: "Results table name",
						Value: "SentimentResults",
					},
					&cli.StringFlag{
						Name:  "partition",
						Usage: "Restrict the summary to one partition (YYYY-MM-DD)",
					},
				},
			},
		},
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithClassifierHost(c.String("classifier-host")),
		ai.WithClassifierModel(c.String("model-name")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid classifier configuration: %w", err)
	}

	analyzer, err := sentable.NewAnalyzer(c.String("db"),
		sentable.WithAIConfig(aiConfig),
		sentable.WithTableName(c.String("table-name")),
		sentable.WithBatchSize(c.Int("batch-size")),
		sentable.WithAnalyzerPoolSize(c.Int("pool-size")),
		sentable.WithRunMonitor(pipeline.NewProgressMonitor(os.Stderr, c.Int("report-interval"))),
	)
	if err != nil {
		return fmt.Errorf("failed to open analyzer: %w", err)
	}
	defer analyzer.Close()

	fetcher := input.NewFileFetcher(c.String("container-name"), slog.Default())
	records, err := fetcher.Fetch(ctx, c.String("input-data"))
	if err != nil {
		return fmt.Errorf("failed to load input data: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Classifier host: %s\n", aiConfig.ClassifierHost)
	fmt.Fprintf(os.Stderr, "Model: %s\n", aiConfig.ClassifierModel)
	fmt.Fprintf(os.Stderr, "Records: %d\n", len(records))
	fmt.Fprintln(os.Stderr)

	rep, err := analyzer.Run(ctx, records, c.String("text-field"))
	if err != nil {
		return fmt.Errorf("classification run failed: %w", err)
	}

	fmt.Printf("Processed: %d\n", rep.Processed)
	fmt.Printf("Inserted:  %d\n", rep.Inserted)
	fmt.Printf("Failed:    %d\n", rep.Failed)
	fmt.Println()
	printSummary(rep.Summary)
	return nil
}

func summaryCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewResultRepository(backend, c.String("table-name"))
	if err != nil {
		return fmt.Errorf("failed to open results table: %w", err)
	}
	defer repo.Close()

	summarizer, err := report.NewSummarizer(repo, slog.Default())
	if err != nil {
		return err
	}

	var summary *core.Summary
	if partition := c.String("partition"); partition != "" {
		summary, err = summarizer.SummarizePartition(ctx, partition)
	} else {
		summary, err = summarizer.Summarize(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to summarize table: %w", err)
	}

	printSummary(summary)
	return nil
}

func printSummary(summary *core.Summary) {
	fmt.Printf("Table: %s\n", summary.TableName)
	fmt.Printf("Total records: %d\n", summary.TotalRecords)
	if summary.TotalRecords == 0 {
		return
	}
	fmt.Printf("Latest processed: %s\n", summary.LatestProcessedAt.Format("2006-01-02 15:04:05"))

	fmt.Println("Sentiment distribution:")
	sentiments := make([]string, 0, len(summary.SentimentDistribution))
	for sentiment := range summary.SentimentDistribution {
		sentiments = append(sentiments, sentiment)
	}
	sort.Strings(sentiments)
	for _, sentiment := range sentiments {
		count := summary.SentimentDistribution[sentiment]
		percentage := float64(count) / float64(summary.TotalRecords) * 100.0
		fmt.Printf("  %-10s %6d (%5.1f%%)\n", sentiment, count, percentage)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
