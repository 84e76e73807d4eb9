// Package ioschema implements the SchemaManager interface for database
// schema management. This is an impure I/O package that wraps GORM
// AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/barcraft/bardb/pkg/bardb"
	"github.com/barcraft/bardb/pkg/db"
	"github.com/barcraft/bardb/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the bardb.SchemaManager interface using GORM
// AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) bardb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the drinks, ingredients and drink_ingredients_link
// tables using GORM AutoMigrate.
func (m *manager) Create(ctx context.Context) error {
	return m.migrate(ctx, CreateSchemaError)
}

// Migrate updates the database schema to the latest version using GORM
// AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	return m.migrate(ctx, MigrateSchemaError)
}

func (m *manager) migrate(
	_ context.Context, wrap func(error) error,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB); err != nil {
		return wrap(err)
	}
	return nil
}
