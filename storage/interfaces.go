package storage

import (
	"context"

	"github.com/poiesic/datascout/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CatalogRepository persists the parsed catalog snapshot: the table metadata
// and description records an import run produced. The snapshot preserves
// import order so a rebuilt search engine lists tables the same way the
// source tree did.
type CatalogRepository interface {
	Repository

	// AddTableRecords appends table records to the snapshot.
	// Record IDs are derived from the source file name; re-adding a record
	// for the same source file overwrites the stored copy in place.
	AddTableRecords(ctx context.Context, records ...*core.TableRecord) error

	// AddDescriptionRecords appends description records to the snapshot.
	// Same identity rule as AddTableRecords.
	AddDescriptionRecords(ctx context.Context, records ...*core.DescriptionRecord) error

	// ReplaceAll atomically swaps the stored snapshot for the given records.
	// Used after a full re-import of the data directory.
	ReplaceAll(ctx context.Context, tables []*core.TableRecord, descriptions []*core.DescriptionRecord) error

	// TableRecords returns every stored table record in import order.
	TableRecords(ctx context.Context) ([]*core.TableRecord, error)

	// DescriptionRecords returns every stored description record in import order.
	DescriptionRecords(ctx context.Context) ([]*core.DescriptionRecord, error)
}
