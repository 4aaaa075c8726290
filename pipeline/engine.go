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

package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sentable/ai"
	"github.com/poiesic/sentable/core"
)

// BatchEngine classifies texts in contiguous fixed-size batches.
//
// Batches are independent: a failed classifier call produces sentinel error
// results for every text of that batch and the run continues. Results keep
// the order of the input texts regardless of pool size.
type BatchEngine struct {
	classifier   ai.Classifier
	preprocessor *Preprocessor
	batchSize    int
	pool         *ants.Pool
	monitor      RunMonitor
	logger       *slog.Logger
}

// EngineOption configures a BatchEngine.
type EngineOption func(*BatchEngine) error

// WithPoolSize sets the worker pool size for concurrent batch classification.
// Default is 1, which processes batches sequentially.
func WithPoolSize(size int) EngineOption {
	return func(e *BatchEngine) error {
		if size < 1 {
			size = 1
		}

		if e.pool != nil {
			e.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *BatchEngine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMonitor sets a monitor to observe the run.
// Default is a no-op monitor.
func WithMonitor(monitor RunMonitor) EngineOption {
	return func(e *BatchEngine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// NewBatchEngine creates a batch classification engine.
func NewBatchEngine(
	classifier ai.Classifier,
	preprocessor *Preprocessor,
	batchSize int,
	opts ...EngineOption,
) (*BatchEngine, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if err := core.ValidateBatchSize(batchSize); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	e := &BatchEngine{
		classifier:   classifier,
		preprocessor: preprocessor,
		batchSize:    batchSize,
		pool:         pool,
		monitor:      &noopMonitor{},
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	if e.preprocessor == nil {
		e.preprocessor = NewPreprocessor(nil, e.logger)
	}

	return e, nil
}

// Classify runs every text through the classifier in batches of at most
// batchSize and returns one result per text, in input order.
//
// Classifier failures never fail the run: the affected batch's texts get
// sentinel error results. The only error returned is the context's error
// when the run is cancelled mid-way; in that case results are discarded.
func (e *BatchEngine) Classify(ctx context.Context, texts []string) ([]core.ClassificationResult, error) {
	results := make([]core.ClassificationResult, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	totalBatches := (len(texts) + e.batchSize - 1) / e.batchSize
	e.monitor.Start(len(texts), totalBatches)
	e.logger.Info("classifying records",
		"records", len(texts),
		"batches", totalBatches,
		"batchSize", e.batchSize)

	var wg sync.WaitGroup
	for start := 0; start < len(texts); start += e.batchSize {
		if ctx.Err() != nil {
			break
		}

		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batchIndex := start / e.batchSize
		batch := texts[start:end]
		out := results[start:end]

		wg.Add(1)
		task := func() {
			defer wg.Done()
			e.classifyBatch(ctx, batchIndex, batch, out)
		}
		if submitErr := e.pool.Submit(task); submitErr != nil {
			// Pool is released or overloaded; run the batch inline.
			task()
		}
	}
	wg.Wait()
	e.monitor.Finish()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// classifyBatch classifies one batch and writes its results into out.
// out aliases the run's result slice; each batch owns a disjoint window.
func (e *BatchEngine) classifyBatch(ctx context.Context, batch int, texts []string, out []core.ClassificationResult) {
	e.monitor.BatchStart(batch, len(texts))

	scores, err := e.classifier.ClassifyTexts(ctx, e.preprocessor.PreprocessAll(texts))
	if err == nil && len(scores) != len(texts) {
		err = ErrLengthMismatch
	}
	if err != nil {
		e.logger.Error("batch classification failed",
			"batch", batch,
			"size", len(texts),
			"err", err)
		e.monitor.BatchFailed(batch, err)
		for i, text := range texts {
			out[i] = core.ErrorResult(text, err)
		}
		e.monitor.BatchDone(batch, out)
		return
	}

	for i, text := range texts {
		labelScores := make([]core.LabelScore, len(scores[i]))
		for j, ls := range scores[i] {
			labelScores[j] = core.LabelScore{Label: ls.Label, Score: ls.Score}
		}
		out[i] = core.NewResult(text, labelScores)
	}
	e.monitor.BatchDone(batch, out)
}

// Release releases the worker pool.
// The engine should not be used after calling Release.
func (e *BatchEngine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
