package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/lt/internal/db"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/tracker"
)

type catalogService struct {
	jira     tracker.Jira
	uow      db.UnitOfWork
	issues   repository.IssueRepo
	projects repository.ProjectRepo
	meta     repository.CacheMetaRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewCatalogService(
	jira tracker.Jira,
	uow db.UnitOfWork,
	issues repository.IssueRepo,
	projects repository.ProjectRepo,
	meta repository.CacheMetaRepo,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		jira:     jira,
		uow:      uow,
		issues:   issues,
		projects: projects,
		meta:     meta,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Refresh(ctx context.Context) (res RefreshResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "refresh_cache", startedAt, &err, fields)

	var (
		projects []domain.Project
		issues   []domain.Issue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = s.jira.Projects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		issues, err = s.jira.SearchIssues(gctx, tracker.ProjectIssuesJQL(""))
		return err
	})
	if err := g.Wait(); err != nil {
		return RefreshResult{}, fmt.Errorf("refreshing cache: %w", err)
	}

	at := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteProjectRepo(tx).ReplaceAll(ctx, projects); err != nil {
			return err
		}
		if err := repository.NewSQLiteIssueRepo(tx).ReplaceAll(ctx, issues); err != nil {
			return err
		}
		meta := repository.NewSQLiteCacheMetaRepo(tx)
		if err := meta.Touch(ctx, repository.CacheProjects, at); err != nil {
			return err
		}
		return meta.Touch(ctx, repository.CacheIssues, at)
	})
	if err != nil {
		return RefreshResult{}, err
	}

	res = RefreshResult{Projects: len(projects), Issues: len(issues)}
	fields["projects"] = res.Projects
	fields["issues"] = res.Issues
	return res, nil
}

func (s *catalogService) EnsureWarm(ctx context.Context) (bool, error) {
	_, err := s.LastRefresh(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := s.Refresh(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *catalogService) LastRefresh(ctx context.Context) (time.Time, error) {
	return s.meta.RefreshedAt(ctx, repository.CacheIssues)
}

func (s *catalogService) Cached(ctx context.Context) (RefreshResult, error) {
	projects, err := s.projects.Count(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	issues, err := s.issues.Count(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	return RefreshResult{Projects: projects, Issues: issues}, nil
}

func (s *catalogService) Projects(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *catalogService) Issues(ctx context.Context, projectKey string) ([]domain.Issue, error) {
	if projectKey == "" {
		return s.issues.List(ctx)
	}
	return s.issues.ListByProject(ctx, projectKey)
}

func (s *catalogService) RefreshProject(ctx context.Context, projectKey string) (issues []domain.Issue, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project": projectKey}
	defer observe(ctx, s.observer, "refresh_project", startedAt, &err, fields)

	issues, err = s.jira.SearchIssues(ctx, tracker.ProjectIssuesJQL(projectKey))
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteIssueRepo(tx).ReplaceProject(ctx, projectKey, issues)
	})
	if err != nil {
		return nil, err
	}
	fields["issues"] = len(issues)
	return issues, nil
}
