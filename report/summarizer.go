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

package report

import (
	"context"
	"iter"
	"log/slog"

	"github.com/poiesic/sentable/core"
	"github.com/poiesic/sentable/storage"
)

// Summarizer computes cumulative statistics over a results table.
type Summarizer struct {
	scanner storage.TableScanner
	logger  *slog.Logger
}

// NewSummarizer creates a summarizer over the given table scanner.
func NewSummarizer(scanner storage.TableScanner, logger *slog.Logger) (*Summarizer, error) {
	if scanner == nil {
		return nil, ErrScannerRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		scanner: scanner,
		logger:  logger,
	}, nil
}

// Summarize scans the entire table and aggregates every persisted entity.
// An empty table yields zero counts and an empty, non-nil distribution.
func (s *Summarizer) Summarize(ctx context.Context) (*core.Summary, error) {
	return s.aggregate(ctx, s.scanner.ScanEntities(ctx))
}

// SummarizePartition aggregates a single partition, covering all the runs
// of one calendar day.
func (s *Summarizer) SummarizePartition(ctx context.Context, partitionKey string) (*core.Summary, error) {
	return s.aggregate(ctx, s.scanner.ScanPartition(ctx, partitionKey))
}

func (s *Summarizer) aggregate(ctx context.Context, entities iter.Seq2[*core.ResultEntity, error]) (*core.Summary, error) {
	summary := &core.Summary{
		SentimentDistribution: map[string]int{},
		TableName:             s.scanner.TableName(),
	}

	for entity, err := range entities {
		if err != nil {
			return nil, err
		}
		summary.TotalRecords++
		summary.SentimentDistribution[entity.PredictedSentiment]++
		if entity.ProcessedAt.After(summary.LatestProcessedAt) {
			summary.LatestProcessedAt = entity.ProcessedAt
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("summarized table",
		"table", summary.TableName,
		"records", summary.TotalRecords)
	return summary, nil
}
