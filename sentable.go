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

package sentable

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/sentable/ai"
	"github.com/poiesic/sentable/ai/openai"
	"github.com/poiesic/sentable/core"
	"github.com/poiesic/sentable/input"
	"github.com/poiesic/sentable/pipeline"
	"github.com/poiesic/sentable/report"
	"github.com/poiesic/sentable/storage"
	"github.com/poiesic/sentable/storage/badger"
)

// Report is the outcome of a single classification run.
type Report struct {
	Processed int
	Inserted  int64
	Failed    int64
	Summary   *core.Summary
}

// Analyzer wires the full classification stack: storage backend, result
// repository, classifier provider, batch engine, and summarizer. It is the
// embedding application's entry point; cmd/sentable is a thin shell over it.
type Analyzer struct {
	backend    *badger.Backend
	repository storage.ResultRepository
	provider   ai.Provider
	aiConfig   *ai.Config
	batchSize  int
	poolSize   int
	monitor    pipeline.RunMonitor
	logger     *slog.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerOptions)

type analyzerOptions struct {
	aiConfig  *ai.Config
	provider  ai.Provider
	tableName string
	batchSize int
	poolSize  int
	inMemory  bool
	monitor   pipeline.RunMonitor
	logger    *slog.Logger
}

// WithAIConfig sets the classifier configuration.
func WithAIConfig(config *ai.Config) AnalyzerOption {
	return func(o *analyzerOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider overrides the classifier provider, bypassing the default
// OpenAI-compatible one. Intended for tests and embedding applications.
func WithProvider(provider ai.Provider) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.provider = provider
	}
}

// WithTableName sets the results table. Default is "SentimentResults".
func WithTableName(name string) AnalyzerOption {
	return func(o *analyzerOptions) {
		if name != "" {
			o.tableName = name
		}
	}
}

// WithBatchSize sets the classification batch size. Default is 16.
func WithBatchSize(size int) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.batchSize = size
	}
}

// WithAnalyzerPoolSize sets the worker pool size for classification and
// persistence. Default is 1.
func WithAnalyzerPoolSize(size int) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.poolSize = size
	}
}

// WithInMemoryStorage opens the backend in memory, discarding data on Close.
// Intended for tests.
func WithInMemoryStorage() AnalyzerOption {
	return func(o *analyzerOptions) {
		o.inMemory = true
	}
}

// WithRunMonitor sets a monitor observing runs.
func WithRunMonitor(monitor pipeline.RunMonitor) AnalyzerOption {
	return func(o *analyzerOptions) {
		o.monitor = monitor
	}
}

// WithAnalyzerLogger sets a custom logger. Default is slog.Default().
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(o *analyzerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewAnalyzer opens the storage backend at filePath and wires the stack.
// Any failure here is fatal; a partially constructed analyzer is torn down
// before returning.
func NewAnalyzer(filePath string, opts ...AnalyzerOption) (*Analyzer, error) {
	options := &analyzerOptions{
		aiConfig:  ai.DefaultConfig(),
		tableName: "SentimentResults",
		batchSize: 16,
		poolSize:  1,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := core.ValidateBatchSize(options.batchSize); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repository, err := badger.NewResultRepository(backend, options.tableName)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repository.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Analyzer{
		backend:    backend,
		repository: repository,
		provider:   provider,
		aiConfig:   options.aiConfig,
		batchSize:  options.batchSize,
		poolSize:   options.poolSize,
		monitor:    options.monitor,
		logger:     options.logger,
	}, nil
}

// Repository exposes the underlying result repository.
func (a *Analyzer) Repository() storage.ResultRepository {
	return a.repository
}

// Run classifies records and persists one entity per record.
// Classifier and insert failures are partial outcomes reflected in the
// report, not errors; only setup failures and cancellation return one.
func (a *Analyzer) Run(ctx context.Context, records []core.InputRecord, textField string) (*Report, error) {
	engineOpts := []pipeline.EngineOption{
		pipeline.WithPoolSize(a.poolSize),
		pipeline.WithLogger(a.logger),
	}
	persistOpts := []pipeline.PersisterOption{
		pipeline.WithPersisterPoolSize(a.poolSize),
		pipeline.WithPersisterLogger(a.logger),
	}
	if a.monitor != nil {
		engineOpts = append(engineOpts, pipeline.WithMonitor(a.monitor))
		persistOpts = append(persistOpts, pipeline.WithPersisterMonitor(a.monitor))
	}

	preprocessor := pipeline.NewPreprocessor(a.aiConfig, a.logger)
	engine, err := pipeline.NewBatchEngine(a.provider.Classifier(), preprocessor, a.batchSize, engineOpts...)
	if err != nil {
		return nil, err
	}
	defer engine.Release()

	persister, err := pipeline.NewPersister(a.repository, persistOpts...)
	if err != nil {
		return nil, err
	}
	defer persister.Release()

	results, err := engine.Classify(ctx, input.Texts(records, textField, a.logger))
	if err != nil {
		return nil, err
	}

	enricher := pipeline.NewEnricher()
	enriched, err := enricher.Enrich(records, results, a.aiConfig.ClassifierModel)
	if err != nil {
		return nil, err
	}

	mapper := pipeline.NewEntityMapper(time.Now())
	stats, err := persister.Persist(ctx, mapper.ToEntities(enriched))
	if err != nil {
		return nil, err
	}

	summary, err := a.Summarize(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Processed: len(records),
		Inserted:  stats.Inserted,
		Failed:    stats.Failed,
		Summary:   summary,
	}, nil
}

// Summarize aggregates everything persisted to the results table so far.
func (a *Analyzer) Summarize(ctx context.Context) (*core.Summary, error) {
	summarizer, err := report.NewSummarizer(a.repository, a.logger)
	if err != nil {
		return nil, err
	}
	return summarizer.Summarize(ctx)
}

// Close releases the provider, repository, and backend.
func (a *Analyzer) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing classifier provider", "err", err)
	}
	if err := a.repository.Close(); err != nil {
		a.logger.Error("error closing result repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
