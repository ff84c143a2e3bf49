package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
)

// AliasExistsError is returned when an alias already points elsewhere.
type AliasExistsError struct {
	Name     string
	IssueKey string
}

func (e *AliasExistsError) Error() string {
	return fmt.Sprintf("alias %s already exists (%s)", e.Name, e.IssueKey)
}

type aliasService struct {
	aliases  repository.AliasRepo
	observer UseCaseObserver
}

func NewAliasService(aliases repository.AliasRepo, observers ...UseCaseObserver) AliasService {
	return &aliasService{aliases: aliases, observer: useCaseObserverOrNoop(observers)}
}

func (s *aliasService) List(ctx context.Context) (domain.Aliases, error) {
	return s.aliases.All(ctx)
}

func (s *aliasService) Set(ctx context.Context, name, issueKey string, overwrite bool) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "alias_set", startedAt, &err, map[string]any{"alias": name, "issue": issueKey})

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t,:") {
		return &domain.ParseError{Kind: "alias", Input: name, Reason: "must be a single word without ',' or ':'"}
	}
	if domain.LooksLikeIssueKey(name) {
		return &domain.ParseError{Kind: "alias", Input: name, Reason: "looks like an issue key"}
	}
	if !domain.LooksLikeIssueKey(issueKey) {
		return &domain.ParseError{Kind: "issue", Input: issueKey, Reason: "expected an issue key like PROJ-123"}
	}
	issueKey = strings.ToUpper(issueKey)

	existing, err := s.aliases.All(ctx)
	if err != nil {
		return err
	}
	if current, ok := existing[name]; ok && current != issueKey && !overwrite {
		return &AliasExistsError{Name: name, IssueKey: current}
	}
	return s.aliases.Set(ctx, name, issueKey)
}

func (s *aliasService) Remove(ctx context.Context, name string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "alias_remove", startedAt, &err, map[string]any{"alias": name})
	return s.aliases.Delete(ctx, name)
}
