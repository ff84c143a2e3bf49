package service

import (
	"context"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/domain"
)

type WorklogService interface {
	app.LogUseCase
}

type ReportService interface {
	app.ReportUseCase
}

type BudgetService interface {
	app.BudgetUseCase
}

// CatalogService keeps the local project and issue caches.
type CatalogService interface {
	// Refresh refetches projects and issues and replaces both caches.
	Refresh(ctx context.Context) (RefreshResult, error)
	// EnsureWarm refreshes the caches only when they were never filled.
	EnsureWarm(ctx context.Context) (bool, error)
	Projects(ctx context.Context) ([]domain.Project, error)
	Issues(ctx context.Context, projectKey string) ([]domain.Issue, error)
	// RefreshProject refetches the issues of one project.
	RefreshProject(ctx context.Context, projectKey string) ([]domain.Issue, error)
	LastRefresh(ctx context.Context) (time.Time, error)
	// Cached counts the rows currently in both caches.
	Cached(ctx context.Context) (RefreshResult, error)
}

// RefreshResult counts what a cache refresh stored.
type RefreshResult struct {
	Projects int
	Issues   int
}

type AliasService interface {
	List(ctx context.Context) (domain.Aliases, error)
	// Set points name at issueKey. An existing alias with a different
	// target is only replaced when overwrite is set.
	Set(ctx context.Context, name, issueKey string, overwrite bool) error
	Remove(ctx context.Context, name string) error
}

// IdentityService resolves the authenticated user.
type IdentityService interface {
	// Authenticate returns the cached user for instance, or asks Jira when
	// there is none or verify is set.
	Authenticate(ctx context.Context, instance string, verify bool) (domain.User, error)
	Forget(ctx context.Context) error
}
