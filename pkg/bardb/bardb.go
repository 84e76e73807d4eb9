// Package bardb holds application metadata and the lifecycle contracts
// implemented by the impure internal/io* packages.
package bardb

import (
	"context"
)

// Version and Build are set by the build system via ldflags.
var (
	Version = "v0.1.0"
	Build   = "n/a"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate, so schema creation is idempotent and safe to
// run multiple times.
type SchemaManager interface {
	// Create creates the drinks, ingredients and drink_ingredients_link
	// tables using GORM AutoMigrate.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error
}

// Pipeline runs one complete catalog reconciliation: fetch, dedupe/filter,
// transform, link, bulk-load, archive, cleanup.
type Pipeline interface {
	// Run executes the full task graph and returns the run summary.
	// At most two runs may be in flight process-wide; further calls fail
	// immediately.
	Run(ctx context.Context) (*RunSummary, error)
}

// RunSummary reports the outcome of a pipeline run.
type RunSummary struct {
	// NewDrinks is the number of drinks that survived dedupe and the
	// store filter.
	NewDrinks int

	// NewIngredients is the number of ingredients not yet in the store.
	NewIngredients int

	// Links is the number of unique drink-ingredient pairs produced.
	Links int

	// DrinksLoaded, IngredientsLoaded and LinksLoaded are rows actually
	// inserted by the bulk loads (duplicates ignored).
	DrinksLoaded      int64
	IngredientsLoaded int64
	LinksLoaded       int64

	// BackupDir is the timestamped directory the transformed artifacts
	// were archived to.
	BackupDir string
}
