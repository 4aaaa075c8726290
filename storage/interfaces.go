package storage

import (
	"context"
	"iter"

	"github.com/poiesic/sentable/core"
)

// EntityStore persists result entities one at a time.
// Implementations must be thread-safe and support concurrent access.
type EntityStore interface {
	// InsertEntity writes a single entity to the results table.
	// Entities are write-once: inserting an entity whose (PartitionKey,
	// RowKey) already exists returns ErrDuplicateKey.
	InsertEntity(ctx context.Context, entity *core.ResultEntity) error
}

// TableScanner streams the persisted population of a results table.
type TableScanner interface {
	// ScanEntities yields every entity currently in the table, ordered by
	// (PartitionKey, RowKey). The scan covers the table's full history, not
	// just the most recent run. Iteration stops early if the yield function
	// returns false or the context is cancelled; a scan failure is delivered
	// as the final yielded error.
	ScanEntities(ctx context.Context) iter.Seq2[*core.ResultEntity, error]

	// ScanPartition yields every entity of one partition in RowKey order.
	// A partition covers one calendar day of runs.
	ScanPartition(ctx context.Context, partitionKey string) iter.Seq2[*core.ResultEntity, error]

	// TableName returns the name of the table this scanner reads.
	TableName() string
}

// ResultRepository provides operations for managing classification result
// entities in one named table.
type ResultRepository interface {
	EntityStore
	TableScanner

	// EnsureTable creates the backing table if it does not exist.
	// Creating an existing table is success, not an error.
	EnsureTable(ctx context.Context) error

	// GetEntity retrieves a single entity by its two-part key.
	// Returns ErrNotFound if the entity doesn't exist.
	GetEntity(ctx context.Context, partitionKey, rowKey string) (*core.ResultEntity, error)

	// Close closes the repository and releases resources.
	Close() error
}
