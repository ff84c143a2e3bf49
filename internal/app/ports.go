package app

import (
	"context"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/report"
)

// LogRequest is one log invocation. Start, End are nil when not given;
// Duration is already defaulted by the caller.
type LogRequest struct {
	Issue    string
	Day      domain.Date
	Start    *domain.TimeOfDay
	End      *domain.TimeOfDay
	Duration time.Duration
	Lunch    time.Duration
	Message  string
	Yes      bool
}

// LogPreview is what the user confirms before a worklog is created.
type LogPreview struct {
	Issue       domain.Issue
	Alias       string
	Start       time.Time
	End         time.Time
	Day         domain.Date
	Today       domain.Date
	Logged      time.Duration
	Warnings    []domain.OverlapWarning
	Description string
}

// Duration returns the span to be logged.
func (p LogPreview) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// LogResult is a created worklog.
type LogResult struct {
	Preview LogPreview
	Worklog domain.Worklog
}

// EntryResult is the outcome of one logm entry. Skipped is set when the
// user declined it.
type EntryResult struct {
	Raw     string
	Result  *LogResult
	Skipped bool
	Err     error
}

// LogPrompter asks the user during log. Implementations must not block
// when there is no terminal.
type LogPrompter interface {
	Warn(ctx context.Context, w domain.OverlapWarning)
	ConfirmSuggestion(ctx context.Context, input string, c domain.Candidate) (bool, error)
	ConfirmLog(ctx context.Context, p LogPreview) (bool, error)
}

type LogUseCase interface {
	Log(ctx context.Context, rc RunContext, req LogRequest, prompter LogPrompter) (*LogResult, error)
	LogMany(ctx context.Context, rc RunContext, entries string, base LogRequest, prompter LogPrompter) ([]EntryResult, error)
}

type ReportUseCase interface {
	Stats(ctx context.Context, rc RunContext, rng domain.DateRange) (report.Report, error)
	List(ctx context.Context, rc RunContext, rng domain.DateRange) ([]domain.Worklog, error)
}

// PersonBudget is one author's share of an issue budget.
type PersonBudget struct {
	Name      string
	Spent     int64
	Remaining int64
}

// Budget is the time budget of an issue in seconds.
type Budget struct {
	Issue        domain.Issue
	Alias        string
	AutoSelected bool
	Estimate     int64
	Spent        int64
	Remaining    int64
	People       []PersonBudget
}

type BudgetUseCase interface {
	Budget(ctx context.Context, rc RunContext, issue string) (*Budget, error)
}
