package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/repository"
	"github.com/alexanderramin/lt/internal/testutil"
)

var testDay = domain.NewDate(2024, time.March, 12)

func testRunContext(aliases domain.Aliases) app.RunContext {
	now := time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC)
	return app.NewRunContext(testutil.TestUser, "https://jira.example.com", now, aliases, 0, app.Defaults{Duration: 8 * time.Hour})
}

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 12, hour, minute, 0, 0, time.UTC)
}

func tod(hour, minute int) *domain.TimeOfDay {
	return &domain.TimeOfDay{Hour: hour, Minute: minute}
}

// scriptedPrompter answers prompts from fixed values and records what it saw.
type scriptedPrompter struct {
	acceptSuggestion bool
	acceptLog        bool
	warnings         []domain.OverlapWarning
	suggestions      []domain.Candidate
	previews         []app.LogPreview
}

func (p *scriptedPrompter) Warn(ctx context.Context, w domain.OverlapWarning) {
	p.warnings = append(p.warnings, w)
}

func (p *scriptedPrompter) ConfirmSuggestion(ctx context.Context, input string, c domain.Candidate) (bool, error) {
	p.suggestions = append(p.suggestions, c)
	return p.acceptSuggestion, nil
}

func (p *scriptedPrompter) ConfirmLog(ctx context.Context, preview app.LogPreview) (bool, error) {
	p.previews = append(p.previews, preview)
	return p.acceptLog, nil
}

// recordingObserver keeps every event.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(ctx context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func newIssueRepo(t *testing.T, issues ...domain.Issue) repository.IssueRepo {
	t.Helper()
	repo := repository.NewSQLiteIssueRepo(testutil.NewTestDB(t))
	if len(issues) > 0 {
		if err := repo.ReplaceAll(context.Background(), issues); err != nil {
			t.Fatalf("seeding issues: %v", err)
		}
	}
	return repo
}
