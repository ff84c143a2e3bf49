package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lt/internal/db"
	"github.com/alexanderramin/lt/internal/domain"
)

// SQLiteAliasRepo implements AliasRepo using a SQLite database.
type SQLiteAliasRepo struct {
	db db.DBTX
}

// NewSQLiteAliasRepo creates a new SQLiteAliasRepo.
func NewSQLiteAliasRepo(conn db.DBTX) *SQLiteAliasRepo {
	return &SQLiteAliasRepo{db: conn}
}

func (r *SQLiteAliasRepo) Set(ctx context.Context, name, issueKey string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO aliases (name, issue_key, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET issue_key = excluded.issue_key`,
		name, issueKey, nowUTC())
	if err != nil {
		return fmt.Errorf("saving alias %s: %w", name, err)
	}
	return nil
}

func (r *SQLiteAliasRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM aliases WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting alias %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting alias %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("alias %s: %w", name, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAliasRepo) All(ctx context.Context) (domain.Aliases, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, issue_key FROM aliases`)
	if err != nil {
		return nil, fmt.Errorf("listing aliases: %w", err)
	}
	defer rows.Close()

	aliases := make(domain.Aliases)
	for rows.Next() {
		var name, key string
		if err := rows.Scan(&name, &key); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}
		aliases[name] = key
	}
	return aliases, rows.Err()
}
