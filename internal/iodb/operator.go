// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/db"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
// Uses sensible hardcoded pool settings that work well for
// most use cases.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// Hardcoded pool settings (can be made configurable
	// later if needed)
	poolConfig.MaxConns = 10       // Max connections
	poolConfig.MinConns = 2        // Keep 2 connections warm
	poolConfig.MaxConnLifetime = 0 // No lifetime limit
	poolConfig.MaxConnIdleTime = 0 // No idle timeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	p.batchSize = cfg.BatchSize
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for advanced
// operations.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// ExistingIDs returns the set of primary keys already stored in the
// given table.
func (p *pgxOperator) ExistingIDs(
	ctx context.Context,
	table string,
) (map[int]struct{}, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	query := fmt.Sprintf(
		"SELECT id FROM %s", pgx.Identifier{table}.Sanitize())

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, QueryError(table, err)
	}
	defer rows.Close()

	res := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, QueryError(table, err)
		}
		res[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(table, err)
	}
	return res, nil
}

// NameToID returns the name-to-id mapping of the given table.
func (p *pgxOperator) NameToID(
	ctx context.Context,
	table string,
) (map[string]int, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	query := fmt.Sprintf(
		"SELECT id, name FROM %s", pgx.Identifier{table}.Sanitize())

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, QueryError(table, err)
	}
	defer rows.Close()

	res := make(map[string]int)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, QueryError(table, err)
		}
		res[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(table, err)
	}
	return res, nil
}

// BulkLoad loads a CSV staging artifact into the given table inside one
// transaction. Rows are copied into a session temp table with CopyFrom,
// then inserted with ON CONFLICT DO NOTHING so reloading the same
// artifact is a no-op. Returns the count of newly inserted rows.
func (p *pgxOperator) BulkLoad(
	ctx context.Context,
	stgr stage.Stager,
	ref stage.Ref,
	table string,
	columns []string,
) (int64, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}

	header, rows, err := stgr.ReadCSV(ref)
	if err != nil {
		return 0, err
	}
	if len(header) != len(columns) {
		return 0, BulkLoadError(table, fmt.Errorf(
			"artifact has %d columns, table load expects %d",
			len(header), len(columns)))
	}

	copyRows, err := convertRows(table, columns, rows)
	if err != nil {
		return 0, err
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, BulkLoadError(table, err)
	}
	defer tx.Rollback(ctx)

	tmp := "bulk_load_" + table
	_, err = tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP",
		pgx.Identifier{tmp}.Sanitize(),
		pgx.Identifier{table}.Sanitize(),
	))
	if err != nil {
		return 0, BulkLoadError(table, err)
	}

	batch := p.batchSize
	if batch < 1 {
		batch = len(copyRows)
	}
	for start := 0; start < len(copyRows); start += batch {
		end := min(start+batch, len(copyRows))
		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{tmp},
			columns,
			pgx.CopyFromRows(copyRows[start:end]),
		)
		if err != nil {
			return 0, BulkLoadError(table, err)
		}
	}

	colList := strings.Join(columns, ", ")
	tag, err := tx.Exec(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT DO NOTHING",
		pgx.Identifier{table}.Sanitize(),
		colList,
		colList,
		pgx.Identifier{tmp}.Sanitize(),
	))
	if err != nil {
		return 0, BulkLoadError(table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, BulkLoadError(table, err)
	}
	return tag.RowsAffected(), nil
}

// convertRows turns CSV strings into typed values for CopyFrom.
// Key columns ("id" and every "*_id") hold integers; everything else
// stays text.
func convertRows(
	table string, columns []string, rows [][]string,
) ([][]any, error) {
	res := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, v := range row {
			if !isIntColumn(columns[j]) {
				vals[j] = v
				continue
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, BulkLoadError(table, fmt.Errorf(
					"row %d: column %s: %w", i+1, columns[j], err))
			}
			vals[j] = n
		}
		res[i] = vals
	}
	return res, nil
}

func isIntColumn(name string) bool {
	return name == "id" || strings.HasSuffix(name, "_id")
}
