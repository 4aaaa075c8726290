package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sentable/core"
	"github.com/poiesic/sentable/storage"
)

// PersistStats reports the outcome of a persistence pass.
// Inserted plus Failed always equals the number of entities offered.
type PersistStats struct {
	Inserted int64
	Failed   int64
}

// Persister writes result entities to a repository, one insert per entity.
// Individual insert failures are counted and logged but never abort the
// pass; the remaining entities are still written.
type Persister struct {
	repository storage.ResultRepository
	pool       *ants.Pool
	monitor    RunMonitor
	logger     *slog.Logger
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister) error

// WithPersisterPoolSize sets the worker pool size for concurrent inserts.
// Default is 1, which inserts sequentially.
func WithPersisterPoolSize(size int) PersisterOption {
	return func(p *Persister) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithPersisterLogger sets a custom logger.
// Default is slog.Default().
func WithPersisterLogger(logger *slog.Logger) PersisterOption {
	return func(p *Persister) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPersisterMonitor sets a monitor to observe insert outcomes.
// Default is a no-op monitor.
func WithPersisterMonitor(monitor RunMonitor) PersisterOption {
	return func(p *Persister) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// NewPersister creates a persister writing to the given repository.
func NewPersister(repository storage.ResultRepository, opts ...PersisterOption) (*Persister, error) {
	if repository == nil {
		return nil, ErrEntityStoreRequired
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	p := &Persister{
		repository: repository,
		pool:       pool,
		monitor:    &noopMonitor{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Persist ensures the table exists and inserts every entity.
// Insert failures are tallied in Failed; the only error returned is the
// context's error when the pass is cancelled mid-way. Entities not yet
// attempted at cancellation count as failed.
func (p *Persister) Persist(ctx context.Context, entities []*core.ResultEntity) (PersistStats, error) {
	if len(entities) == 0 {
		return PersistStats{}, nil
	}

	if err := p.repository.EnsureTable(ctx); err != nil {
		return PersistStats{}, err
	}

	var inserted, failed atomic.Int64
	var wg sync.WaitGroup
	for _, entity := range entities {
		if ctx.Err() != nil {
			failed.Add(1)
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := p.repository.InsertEntity(ctx, entity); err != nil {
				failed.Add(1)
				p.monitor.EntityFailed(entity.RowKey, err)
				p.logger.Error("failed to insert entity",
					"rowKey", entity.RowKey,
					"err", err)
				return
			}
			inserted.Add(1)
			p.monitor.EntityInserted(entity.RowKey)
		}
		if submitErr := p.pool.Submit(task); submitErr != nil {
			task()
		}
	}
	wg.Wait()

	stats := PersistStats{
		Inserted: inserted.Load(),
		Failed:   failed.Load(),
	}
	p.logger.Info("persistence pass complete",
		"table", p.repository.TableName(),
		"inserted", stats.Inserted,
		"failed", stats.Failed)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// Release releases the worker pool.
// The persister should not be used after calling Release.
func (p *Persister) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
