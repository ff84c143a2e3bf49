package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and are
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Tables lists every table of the schema.
var Tables = []string{"issues", "projects", "aliases", "identity", "cache_meta"}

// CacheTables are the tables refilled from Jira; Reset empties them.
// Aliases are user data and survive a reset.
var CacheTables = []string{"issues", "projects", "identity", "cache_meta"}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		key        TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS issues (
		key         TEXT PRIMARY KEY,
		id          TEXT NOT NULL,
		summary     TEXT NOT NULL DEFAULT '',
		project_key TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project_key)`,

	`CREATE TABLE IF NOT EXISTS aliases (
		name       TEXT PRIMARY KEY,
		issue_key  TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_aliases_issue ON aliases(issue_key)`,

	`CREATE TABLE IF NOT EXISTS identity (
		id           TEXT PRIMARY KEY CHECK(id = 'default'),
		instance     TEXT NOT NULL,
		name         TEXT NOT NULL,
		key          TEXT NOT NULL,
		display_name TEXT NOT NULL DEFAULT '',
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS cache_meta (
		name         TEXT PRIMARY KEY,
		refreshed_at TEXT NOT NULL
	)`,
}

// Reset deletes all cached rows, keeping the schema.
func Reset(ctx context.Context, db DBTX) error {
	for _, table := range CacheTables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}
