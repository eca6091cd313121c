package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateAnalysis_Unsupported(t *testing.T) {
	err := MigrateAnalysis(schema.RedisBackend, "redis://localhost:6379", -1)
	assert.Error(t, err)
}

// tableExists reports whether a SQLite table or index exists.
func tableExists(t *testing.T, dbPath, kind, name string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", kind, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Latest version creates both tables and the pitcher index
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, "table", analysisRunsTable))
	assert.True(t, tableExists(t, dbPath, "table", pitcherSpeedsTable))
	assert.True(t, tableExists(t, dbPath, "index", "idx_fastball_pitcher_speeds_pitcher"))

	// Running again is a no-op
	assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// Step down to version 1 drops the index only
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	assert.False(t, tableExists(t, dbPath, "index", "idx_fastball_pitcher_speeds_pitcher"))
	assert.True(t, tableExists(t, dbPath, "table", pitcherSpeedsTable))

	// Roll back everything
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, "table", analysisRunsTable))

	// And back up to version 2
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 2))
	assert.True(t, tableExists(t, dbPath, "index", "idx_fastball_pitcher_speeds_pitcher"))
}

func TestMigrateAnalysis_StoreAfterMigration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrated.db")
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// The store's CREATE IF NOT EXISTS must agree with the migrated schema
	store, err := NewAnalysisStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalRuns)
}

func TestMigrateAnalysis_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, ":memory:", -1))
}
