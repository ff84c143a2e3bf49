package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/booking"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/tracker"
)

// recentIssueWindow is how far back budget looks for the last booked issue.
const recentIssueWindow = 30

// ErrNoRecentIssue is returned by budget without an issue when nothing was
// booked recently.
var ErrNoRecentIssue = errors.New("no worklogs in the last 30 days, specify an issue")

type budgetService struct {
	jira     tracker.Jira
	tempo    tracker.Tempo
	observer UseCaseObserver
}

func NewBudgetService(jira tracker.Jira, tempo tracker.Tempo, observers ...UseCaseObserver) BudgetService {
	return &budgetService{jira: jira, tempo: tempo, observer: useCaseObserverOrNoop(observers)}
}

func (s *budgetService) Budget(ctx context.Context, rc app.RunContext, input string) (b *app.Budget, err error) {
	startedAt := time.Now()
	fields := map[string]any{"issue": input}
	defer observe(ctx, s.observer, "budget", startedAt, &err, fields)

	auto := false
	if input == "" {
		input, err = s.recentIssue(ctx, rc)
		if err != nil {
			return nil, err
		}
		auto = true
	}

	target := booking.ResolveTarget(input, rc.Aliases)
	issue, err := s.jira.Issue(ctx, target.Key)
	if err != nil {
		return nil, err
	}
	fields["issue_key"] = issue.Key

	worklogs, err := s.jira.IssueWorklogs(ctx, issue.Key)
	if err != nil {
		return nil, err
	}

	b = ComputeBudget(issue, worklogs)
	b.Alias = target.Alias
	b.AutoSelected = auto
	return b, nil
}

func (s *budgetService) recentIssue(ctx context.Context, rc app.RunContext) (string, error) {
	worklogs, err := s.tempo.Worklogs(ctx, rc.User.Key, rc.Today.AddDays(-recentIssueWindow), rc.Today)
	if err != nil {
		return "", fmt.Errorf("finding recent issue: %w", err)
	}
	if len(worklogs) == 0 {
		return "", ErrNoRecentIssue
	}
	return worklogs[len(worklogs)-1].Issue.Key, nil
}

// ComputeBudget splits the issue's time tracking by worklog author. The
// remaining estimate is shared out in proportion to each author's time.
func ComputeBudget(issue domain.Issue, worklogs []domain.IssueWorklog) *app.Budget {
	tt := issue.TimeTracking
	b := &app.Budget{
		Issue:     issue,
		Estimate:  tt.OriginalEstimateSeconds,
		Spent:     tt.TimeSpentSeconds,
		Remaining: tt.RemainingEstimateSeconds,
	}

	index := make(map[string]int)
	var logged int64
	for _, w := range worklogs {
		i, ok := index[w.AuthorName]
		if !ok {
			i = len(b.People)
			index[w.AuthorName] = i
			b.People = append(b.People, app.PersonBudget{Name: w.AuthorName})
		}
		b.People[i].Spent += w.Seconds
		logged += w.Seconds
	}

	if b.Remaining > 0 && logged > 0 {
		for i := range b.People {
			b.People[i].Remaining = b.Remaining * b.People[i].Spent / logged
		}
	}
	return b
}
