package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/datascout/core"
	"github.com/poiesic/datascout/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
//
// Records are stored twice: a primary entry keyed by the record's derived ID,
// and an order-index entry mapping a monotonic sequence value to that ID.
// Scanning the order index reproduces import order; rewriting a record for a
// source file already present touches only the primary entry.
type CatalogRepository struct {
	backend     *Backend
	orderSeq    *badger.Sequence
	ownsBackend bool
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewRepository opens a BadgerDB database at path and returns a catalog
// repository that owns it. Closing the repository closes the database.
func NewRepository(path string) (storage.CatalogRepository, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	repo, err := NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}

// NewCatalogRepository creates a CatalogRepository on an existing backend.
// The caller retains ownership of the backend.
func NewCatalogRepository(backend *Backend) (*CatalogRepository, error) {
	orderSeq, err := backend.GetSequence(catalogOrderSeq)
	if err != nil {
		return nil, err
	}
	return &CatalogRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence, and the backend if this repository
// owns it.
func (r *CatalogRepository) Close() error {
	err := r.orderSeq.Release()
	if r.ownsBackend {
		if closeErr := r.backend.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTableRecords appends table records to the snapshot.
func (r *CatalogRepository) AddTableRecords(ctx context.Context, records ...*core.TableRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateTableRecord(record); err != nil {
				return err
			}
			id := tableRecordID(record)
			if err := r.putRecord(tx, tableRecordPrefix, tableOrderPrefix, id,
				storage.MarshalTableRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddDescriptionRecords appends description records to the snapshot.
func (r *CatalogRepository) AddDescriptionRecords(ctx context.Context, records ...*core.DescriptionRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateDescriptionRecord(record); err != nil {
				return err
			}
			id := descRecordID(record)
			if err := r.putRecord(tx, descRecordPrefix, descOrderPrefix, id,
				storage.MarshalDescriptionRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ReplaceAll atomically swaps the stored snapshot for the given records.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, tables []*core.TableRecord, descriptions []*core.DescriptionRecord) error {
	err := r.backend.DropPrefixes(
		[]byte(tableRecordPrefix+":"),
		[]byte(tableOrderPrefix+":"),
		[]byte(descRecordPrefix+":"),
		[]byte(descOrderPrefix+":"),
	)
	if err != nil {
		return err
	}
	if err := r.AddTableRecords(ctx, tables...); err != nil {
		return err
	}
	return r.AddDescriptionRecords(ctx, descriptions...)
}

// TableRecords returns every stored table record in import order.
func (r *CatalogRepository) TableRecords(ctx context.Context) ([]*core.TableRecord, error) {
	var results []*core.TableRecord
	err := r.scanOrdered(tableRecordPrefix, tableOrderPrefix, func(val []byte) error {
		record, err := storage.UnmarshalTableRecord(val)
		if err != nil {
			return err
		}
		results = append(results, record)
		return nil
	})
	return results, err
}

// DescriptionRecords returns every stored description record in import order.
func (r *CatalogRepository) DescriptionRecords(ctx context.Context) ([]*core.DescriptionRecord, error) {
	var results []*core.DescriptionRecord
	err := r.scanOrdered(descRecordPrefix, descOrderPrefix, func(val []byte) error {
		record, err := storage.UnmarshalDescriptionRecord(val)
		if err != nil {
			return err
		}
		results = append(results, record)
		return nil
	})
	return results, err
}

// putRecord writes a record's primary entry and, for a record not seen
// before, its order-index entry.
func (r *CatalogRepository) putRecord(tx *badger.Txn, recordPrefix, orderPrefix string, id core.ID, value []byte) error {
	key := makeRecordKey(recordPrefix, id)

	_, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		seq, seqErr := r.orderSeq.Next()
		if seqErr != nil {
			return seqErr
		}
		if seqErr := tx.Set(makeOrderKey(orderPrefix, seq), storage.MarshalID(id)); seqErr != nil {
			return seqErr
		}
	} else if err != nil {
		return err
	}

	return tx.Set(key, value)
}

// scanOrdered walks the order index and hands each referenced primary value
// to read. A dangling order entry is skipped; the snapshot stays usable even
// if a past write was interrupted between the two entries.
func (r *CatalogRepository) scanOrdered(recordPrefix, orderPrefix string, read func(val []byte) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(orderPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			item, err := tx.Get(makeRecordKey(recordPrefix, id))
			if err == badger.ErrKeyNotFound {
				r.backend.logger.Warn("dangling order entry", "prefix", recordPrefix, "id", id)
				continue
			}
			if err != nil {
				return err
			}
			if err := item.Value(read); err != nil {
				return err
			}
		}
		return nil
	}, false)
}
