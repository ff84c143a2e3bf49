package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lt/internal/db"
	"github.com/alexanderramin/lt/internal/domain"
)

// SQLiteIssueRepo implements IssueRepo using a SQLite database.
type SQLiteIssueRepo struct {
	db db.DBTX
}

// NewSQLiteIssueRepo creates a new SQLiteIssueRepo.
func NewSQLiteIssueRepo(conn db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: conn}
}

const issueColumns = `key, id, summary, project_key`

func (r *SQLiteIssueRepo) ReplaceProject(ctx context.Context, projectKey string, issues []domain.Issue) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM issues WHERE project_key = ?`, projectKey); err != nil {
		return fmt.Errorf("clearing issues of %s: %w", projectKey, err)
	}
	return r.insert(ctx, issues)
}

func (r *SQLiteIssueRepo) ReplaceAll(ctx context.Context, issues []domain.Issue) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM issues`); err != nil {
		return fmt.Errorf("clearing issues: %w", err)
	}
	return r.insert(ctx, issues)
}

func (r *SQLiteIssueRepo) insert(ctx context.Context, issues []domain.Issue) error {
	now := nowUTC()
	for _, i := range issues {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO issues (`+issueColumns+`, updated_at) VALUES (?, ?, ?, ?, ?)`,
			i.Key, i.ID, i.Summary, i.ProjectKey, now)
		if err != nil {
			return fmt.Errorf("inserting issue %s: %w", i.Key, err)
		}
	}
	return nil
}

func (r *SQLiteIssueRepo) GetByKey(ctx context.Context, key string) (domain.Issue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE key = ?`, strings.ToUpper(key))
	var i domain.Issue
	if err := row.Scan(&i.Key, &i.ID, &i.Summary, &i.ProjectKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Issue{}, fmt.Errorf("issue %s: %w", key, ErrNotFound)
		}
		return domain.Issue{}, fmt.Errorf("scanning issue: %w", err)
	}
	return i, nil
}

func (r *SQLiteIssueRepo) List(ctx context.Context) ([]domain.Issue, error) {
	return r.query(ctx, `SELECT `+issueColumns+` FROM issues ORDER BY project_key, CAST(SUBSTR(key, LENGTH(project_key) + 2) AS INTEGER)`)
}

func (r *SQLiteIssueRepo) ListByProject(ctx context.Context, projectKey string) ([]domain.Issue, error) {
	return r.query(ctx, `SELECT `+issueColumns+` FROM issues WHERE project_key = ?
		ORDER BY CAST(SUBSTR(key, LENGTH(project_key) + 2) AS INTEGER)`, strings.ToUpper(projectKey))
}

func (r *SQLiteIssueRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM issues`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting issues: %w", err)
	}
	return n, nil
}

func (r *SQLiteIssueRepo) query(ctx context.Context, query string, args ...any) ([]domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.Issue
	for rows.Next() {
		var i domain.Issue
		if err := rows.Scan(&i.Key, &i.ID, &i.Summary, &i.ProjectKey); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}
