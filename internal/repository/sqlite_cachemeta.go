package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lt/internal/db"
)

// SQLiteCacheMetaRepo implements CacheMetaRepo using a SQLite database.
type SQLiteCacheMetaRepo struct {
	db db.DBTX
}

// NewSQLiteCacheMetaRepo creates a new SQLiteCacheMetaRepo.
func NewSQLiteCacheMetaRepo(conn db.DBTX) *SQLiteCacheMetaRepo {
	return &SQLiteCacheMetaRepo{db: conn}
}

func (r *SQLiteCacheMetaRepo) Touch(ctx context.Context, name string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_meta (name, refreshed_at) VALUES (?, ?)`,
		name, at.UTC().Format(timestampLayout))
	if err != nil {
		return fmt.Errorf("touching cache %s: %w", name, err)
	}
	return nil
}

// RefreshedAt returns ErrNotFound when the cache was never filled.
func (r *SQLiteCacheMetaRepo) RefreshedAt(ctx context.Context, name string) (time.Time, error) {
	var s sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT refreshed_at FROM cache_meta WHERE name = ?`, name).Scan(&s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("cache %s: %w", name, ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("reading cache %s: %w", name, err)
	}
	return parseTimestamp(s), nil
}
