package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Migrations are idempotent.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_ReportsStatementErrors(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Close())

	err := Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 0")
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range Tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_issues_project", "idx_aliases_issue"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_IdentityIsSingleRow(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO identity (id, instance, name, key, updated_at) VALUES ('other', 'x', 'y', 'z', 'now')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectoryAndUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestReset_ClearsCacheKeepsAliases(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO projects (key, name, updated_at) VALUES ('TSI', 'Internal', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO aliases (name, issue_key, created_at) VALUES ('opt', 'TSI-1', 'now')`)
	require.NoError(t, err)

	require.NoError(t, Reset(ctx, db))

	for _, table := range CacheTables {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, table)
	}
	var aliases int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM aliases`).Scan(&aliases))
	assert.Equal(t, 1, aliases)
}
