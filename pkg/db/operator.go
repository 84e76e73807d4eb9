package db

import (
	"context"

	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for database management operations.
// It provides connection lifecycle management and the few queries the
// pipeline needs; everything else goes through Pool so callers can use
// transactions and CopyFrom directly.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// ExistingIDs returns the set of primary keys already stored in
	// the given table.
	ExistingIDs(ctx context.Context, table string) (map[int]struct{}, error)

	// NameToID returns the name-to-id mapping of the given table.
	// Used to resolve ingredient mentions against stored ingredients.
	NameToID(ctx context.Context, table string) (map[string]int, error)

	// BulkLoad loads a CSV staging artifact into the given table,
	// skipping rows whose key already exists. The whole load happens
	// in one transaction; the count of inserted rows is returned.
	BulkLoad(
		ctx context.Context, stgr stage.Stager, ref stage.Ref,
		table string, columns []string,
	) (int64, error)
}
