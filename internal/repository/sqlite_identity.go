package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lt/internal/db"
	"github.com/alexanderramin/lt/internal/domain"
)

// SQLiteIdentityRepo implements IdentityRepo using a SQLite database. Only
// one identity is kept; it is tied to the instance it was fetched from.
type SQLiteIdentityRepo struct {
	db db.DBTX
}

// NewSQLiteIdentityRepo creates a new SQLiteIdentityRepo.
func NewSQLiteIdentityRepo(conn db.DBTX) *SQLiteIdentityRepo {
	return &SQLiteIdentityRepo{db: conn}
}

func (r *SQLiteIdentityRepo) Get(ctx context.Context, instance string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, key, display_name FROM identity WHERE id = 'default' AND instance = ?`, instance)

	var u domain.User
	if err := row.Scan(&u.Name, &u.Key, &u.DisplayName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, fmt.Errorf("identity: %w", ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("scanning identity: %w", err)
	}
	return u, nil
}

func (r *SQLiteIdentityRepo) Upsert(ctx context.Context, instance string, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO identity (id, instance, name, key, display_name, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?)`,
		instance, u.Name, u.Key, u.DisplayName, nowUTC())
	if err != nil {
		return fmt.Errorf("upserting identity: %w", err)
	}
	return nil
}

func (r *SQLiteIdentityRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM identity`); err != nil {
		return fmt.Errorf("clearing identity: %w", err)
	}
	return nil
}
