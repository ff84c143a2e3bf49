package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

// ErrNotFound is returned when a cached row does not exist.
var ErrNotFound = errors.New("not found")

// IssueRepo caches issue keys, ids and summaries for matching and completion.
type IssueRepo interface {
	// ReplaceProject replaces all cached issues of projectKey.
	ReplaceProject(ctx context.Context, projectKey string, issues []domain.Issue) error
	// ReplaceAll replaces the whole issue cache.
	ReplaceAll(ctx context.Context, issues []domain.Issue) error
	GetByKey(ctx context.Context, key string) (domain.Issue, error)
	List(ctx context.Context) ([]domain.Issue, error)
	ListByProject(ctx context.Context, projectKey string) ([]domain.Issue, error)
	Count(ctx context.Context) (int, error)
}

// ProjectRepo caches the project list.
type ProjectRepo interface {
	ReplaceAll(ctx context.Context, projects []domain.Project) error
	List(ctx context.Context) ([]domain.Project, error)
	Count(ctx context.Context) (int, error)
}

// AliasRepo stores user-defined issue aliases.
type AliasRepo interface {
	Set(ctx context.Context, name, issueKey string) error
	Delete(ctx context.Context, name string) error
	All(ctx context.Context) (domain.Aliases, error)
}

// IdentityRepo stores the authenticated user for the configured instance.
type IdentityRepo interface {
	Get(ctx context.Context, instance string) (domain.User, error)
	Upsert(ctx context.Context, instance string, u domain.User) error
	Clear(ctx context.Context) error
}

// CacheMetaRepo records when each cache was last refreshed.
type CacheMetaRepo interface {
	Touch(ctx context.Context, name string, at time.Time) error
	RefreshedAt(ctx context.Context, name string) (time.Time, error)
}

// Cache names used with CacheMetaRepo.
const (
	CacheProjects = "projects"
	CacheIssues   = "issues"
)
