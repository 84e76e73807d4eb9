package iodb

import (
	"context"
	"testing"

	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsIntColumn(t *testing.T) {
	assert.True(t, isIntColumn("id"))
	assert.True(t, isIntColumn("drink_id"))
	assert.True(t, isIntColumn("ingredient_id"))
	assert.False(t, isIntColumn("name"))
	assert.False(t, isIntColumn("identity"))
}

func TestConvertRows(t *testing.T) {
	columns := []string{"id", "name"}
	rows := [][]string{{"1", "Margarita"}, {"2", "Mojito"}}

	got, err := convertRows("drinks", columns, rows)
	require.NoError(t, err)
	assert.Equal(t, [][]any{{1, "Margarita"}, {2, "Mojito"}}, got)
}

func TestConvertRowsBadID(t *testing.T) {
	_, err := convertRows(
		"drinks", []string{"id", "name"}, [][]string{{"one", "Margarita"}})
	assert.Error(t, err)
}

func TestOperatorNotConnected(t *testing.T) {
	op := NewPgxOperator()
	ctx := context.Background()

	_, err := op.ExistingIDs(ctx, "drinks")
	assert.Error(t, err)

	_, err = op.NameToID(ctx, "ingredients")
	assert.Error(t, err)
}

// memStager is a minimal in-memory Stager for exercising BulkLoad
// without touching disk.
type memStager struct {
	header []string
	rows   [][]string
}

func (m *memStager) WriteJSON(string, any) (stage.Ref, error) { return "", nil }
func (m *memStager) ReadJSON(stage.Ref, any) error            { return nil }
func (m *memStager) WriteCSV(
	kind string, header []string, rows [][]string,
) (stage.Ref, error) {
	m.header, m.rows = header, rows
	return stage.Ref(kind + ".csv"), nil
}
func (m *memStager) ReadCSV(
	stage.Ref,
) ([]string, [][]string, error) {
	return m.header, m.rows, nil
}
func (m *memStager) Path(ref stage.Ref) string          { return string(ref) }
func (m *memStager) Remove(stage.Ref) error             { return nil }
func (m *memStager) Archive(...stage.Ref) (string, error) { return "", nil }
func (m *memStager) Cleanup() error                     { return nil }

// TestBulkLoad_Integration needs a running PostgreSQL with the default
// configuration. Run with -short to skip.
func TestBulkLoad_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	cfg := config.New()

	op := NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	_, err := op.Pool().Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bulk_load_scratch (
			id INT PRIMARY KEY,
			name VARCHAR(255)
		)`)
	require.NoError(t, err)
	defer op.Pool().Exec(ctx, "DROP TABLE bulk_load_scratch")

	stgr := &memStager{}
	ref, err := stgr.WriteCSV("drinks",
		[]string{"id", "name"},
		[][]string{{"1", "Margarita"}, {"2", "Mojito"}},
	)
	require.NoError(t, err)

	n, err := op.BulkLoad(
		ctx, stgr, ref, "bulk_load_scratch", []string{"id", "name"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Reloading the same artifact inserts nothing.
	n, err = op.BulkLoad(
		ctx, stgr, ref, "bulk_load_scratch", []string{"id", "name"})
	require.NoError(t, err)
	assert.Zero(t, n)

	ids, err := op.ExistingIDs(ctx, "bulk_load_scratch")
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	names, err := op.NameToID(ctx, "bulk_load_scratch")
	require.NoError(t, err)
	assert.Equal(t, 1, names["Margarita"])
}
