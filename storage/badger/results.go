package badger

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sentable/core"
	"github.com/poiesic/sentable/storage"
)

// ResultRepository implements storage.ResultRepository for BadgerDB.
// One repository instance is bound to one named table; several tables can
// share a backend.
type ResultRepository struct {
	backend *Backend
	table   string
}

var _ storage.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a ResultRepository bound to the named table.
// The table itself is created lazily by EnsureTable.
func NewResultRepository(backend *Backend, table string) (storage.ResultRepository, error) {
	if table == "" || strings.Contains(table, ":") {
		return nil, storage.ErrInvalidTableName
	}

	return &ResultRepository{
		backend: backend,
		table:   table,
	}, nil
}

// TableName returns the name of the table this repository manages.
func (r *ResultRepository) TableName() string {
	return r.table
}

// Close releases repository resources. The backend is owned by the caller
// and stays open.
func (r *ResultRepository) Close() error {
	return nil
}

// EnsureTable creates the table marker if it does not exist.
// Creating an existing table is success, not an error.
func (r *ResultRepository) EnsureTable(ctx context.Context) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTableMarkerKey(r.table)

		_, err := tx.Get(key)
		if err == nil {
			// Already exists
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		createdAt := time.Now().UTC().Format(time.RFC3339)
		if err := tx.Set(key, []byte(createdAt)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// InsertEntity writes a single entity to the table.
// Entities are write-once: an insert for an occupied (PartitionKey, RowKey)
// returns storage.ErrDuplicateKey.
func (r *ResultRepository) InsertEntity(ctx context.Context, entity *core.ResultEntity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := core.ValidateEntity(entity); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEntityKey(r.table, entity.PartitionKey, entity.RowKey)

		_, err := tx.Get(key)
		if err == nil {
			return storage.ErrDuplicateKey
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := tx.Set(key, storage.MarshalResultEntity(entity)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetEntity retrieves a single entity by its two-part key.
func (r *ResultRepository) GetEntity(ctx context.Context, partitionKey, rowKey string) (*core.ResultEntity, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entity *core.ResultEntity
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntityKey(r.table, partitionKey, rowKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			entity, err = storage.UnmarshalResultEntity(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

// ScanEntities yields every entity in the table in (PartitionKey, RowKey)
// order.
func (r *ResultRepository) ScanEntities(ctx context.Context) iter.Seq2[*core.ResultEntity, error] {
	return r.scanPrefix(ctx, makeTableEntityPrefix(r.table))
}

// ScanPartition yields every entity of one partition in RowKey order.
// A partition holds a full calendar day of runs.
func (r *ResultRepository) ScanPartition(ctx context.Context, partitionKey string) iter.Seq2[*core.ResultEntity, error] {
	return r.scanPrefix(ctx, makePartitionPrefix(r.table, partitionKey))
}

// scanPrefix streams the entities stored under a key prefix.
func (r *ResultRepository) scanPrefix(ctx context.Context, prefix []byte) iter.Seq2[*core.ResultEntity, error] {
	return func(yield func(*core.ResultEntity, error) bool) {
		if r.backend.IsClosed() {
			yield(nil, storage.ErrStorageClosed)
			return
		}

		err := r.backend.WithTx(func(tx *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = prefix
			iterator := tx.NewIterator(opts)
			defer iterator.Close()

			for iterator.Rewind(); iterator.Valid(); iterator.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}

				var entity *core.ResultEntity
				err := iterator.Item().Value(func(val []byte) error {
					var err error
					entity, err = storage.UnmarshalResultEntity(val)
					return err
				})
				if err != nil {
					return err
				}
				if !yield(entity, nil) {
					return nil
				}
			}
			return nil
		}, false)
		if err != nil {
			yield(nil, err)
		}
	}
}
