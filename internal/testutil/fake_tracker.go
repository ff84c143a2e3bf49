package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/tracker"
)

// FakeJira is an in-memory tracker.Jira.
type FakeJira struct {
	mu          sync.Mutex
	User        domain.User
	Issues      map[string]domain.Issue
	ProjectList []domain.Project
	Worklogs    map[string][]domain.IssueWorklog
	// MyselfErr, when set, is returned by Myself.
	MyselfErr  error
	IssueCalls int
}

// NewFakeJira creates a FakeJira knowing the given issues.
func NewFakeJira(issues ...domain.Issue) *FakeJira {
	f := &FakeJira{
		User:     TestUser,
		Issues:   make(map[string]domain.Issue),
		Worklogs: make(map[string][]domain.IssueWorklog),
	}
	for _, i := range issues {
		f.Issues[i.Key] = i
	}
	return f
}

func (f *FakeJira) Myself(ctx context.Context) (domain.User, error) {
	if f.MyselfErr != nil {
		return domain.User{}, f.MyselfErr
	}
	return f.User, nil
}

func (f *FakeJira) Issue(ctx context.Context, key string) (domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.IssueCalls++
	issue, ok := f.Issues[strings.ToUpper(key)]
	if !ok {
		return domain.Issue{}, fmt.Errorf("fetching issue %s: %w", key, tracker.ErrNotFound)
	}
	return issue, nil
}

func (f *FakeJira) SearchIssues(ctx context.Context, jql string) ([]domain.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Issue
	for _, i := range f.Issues {
		if strings.Contains(jql, "project =") && !strings.Contains(jql, `"`+i.ProjectKey+`"`) {
			continue
		}
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out, nil
}

func (f *FakeJira) Projects(ctx context.Context) ([]domain.Project, error) {
	return f.ProjectList, nil
}

func (f *FakeJira) IssueWorklogs(ctx context.Context, key string) ([]domain.IssueWorklog, error) {
	return f.Worklogs[strings.ToUpper(key)], nil
}

// FakeTempo is an in-memory tracker.Tempo.
type FakeTempo struct {
	mu       sync.Mutex
	Existing []domain.Worklog
	Created  []domain.NewWorklog
	// CreateErr, when set, is returned by CreateWorklog.
	CreateErr error
}

func (f *FakeTempo) Worklogs(ctx context.Context, workerKey string, from, to domain.Date) ([]domain.Worklog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rng := domain.NewDateRange(from, to)
	var out []domain.Worklog
	for _, w := range f.Existing {
		if rng.Contains(w.Day()) {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Started.Before(out[j].Started) })
	return out, nil
}

func (f *FakeTempo) CreateWorklog(ctx context.Context, req domain.NewWorklog) (domain.Worklog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return domain.Worklog{}, f.CreateErr
	}
	f.Created = append(f.Created, req)
	w := domain.Worklog{
		ID:      nextID(),
		Started: req.Started,
		Seconds: req.Seconds,
		Issue:   domain.IssueRef{ID: req.IssueID, Key: req.IssueKey},
		Author:  req.WorkerKey,
		Comment: req.Comment,
	}
	f.Existing = append(f.Existing, w)
	return w, nil
}

var (
	_ tracker.Jira  = (*FakeJira)(nil)
	_ tracker.Tempo = (*FakeTempo)(nil)
)
