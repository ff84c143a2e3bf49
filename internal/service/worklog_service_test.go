package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/lt/internal/app"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorklogService_Log_CreatesWorklogAfterLastEntry(t *testing.T) {
	issue := testutil.NewTestIssue("TSI-1")
	jira := testutil.NewFakeJira(issue)
	tempo := &testutil.FakeTempo{Existing: []domain.Worklog{
		testutil.NewTestWorklog("TSI-2", at(9, 0), 2*time.Hour),
	}}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))
	prompter := &scriptedPrompter{acceptLog: true}

	res, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "tsi-1", Day: testDay, Duration: 90 * time.Minute, Message: "review",
	}, prompter)
	require.NoError(t, err)

	require.Len(t, tempo.Created, 1)
	created := tempo.Created[0]
	assert.Equal(t, issue.ID, created.IssueID)
	assert.Equal(t, at(11, 0), created.Started)
	assert.Equal(t, int64(5400), created.Seconds)
	assert.Equal(t, "review", created.Comment)
	assert.Equal(t, testutil.TestUser.Key, created.WorkerKey)

	require.Len(t, prompter.previews, 1)
	assert.Equal(t, 2*time.Hour, prompter.previews[0].Logged)
	assert.Equal(t, 90*time.Minute, res.Preview.Duration())
}

func TestWorklogService_Log_UsesConfiguredStartAndDefaultMessage(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))

	rc := testRunContext(domain.Aliases{"opt": "TSI-1"})
	rc.Defaults.Start = tod(8, 30)
	rc.Defaults.Message = "daily work"

	res, err := svc.Log(context.Background(), rc, app.LogRequest{
		Issue: "opt", Day: testDay, Duration: time.Hour, Yes: true,
	}, &scriptedPrompter{})
	require.NoError(t, err)
	assert.Equal(t, "opt", res.Preview.Alias)
	assert.Equal(t, at(8, 30), tempo.Created[0].Started)
	assert.Equal(t, "daily work", tempo.Created[0].Comment)
}

func TestWorklogService_Log_OverlapWarnsButLogs(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{Existing: []domain.Worklog{
		testutil.NewTestWorklog("TSI-2", at(9, 0), 3*time.Hour),
	}}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))
	prompter := &scriptedPrompter{}

	_, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "TSI-1", Day: testDay, Start: tod(11, 0), End: tod(13, 0), Yes: true,
	}, prompter)
	require.NoError(t, err)
	require.Len(t, prompter.warnings, 1)
	assert.Equal(t, "the time entry overlaps with an existing worklog from 09:00 to 12:00", prompter.warnings[0].String())
	assert.Len(t, tempo.Created, 1)
}

func TestWorklogService_Log_DailyCapBlocks(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{Existing: []domain.Worklog{
		testutil.NewTestWorklog("TSI-2", at(8, 0), 9*time.Hour),
	}}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))

	_, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "TSI-1", Day: testDay, Duration: 2 * time.Hour, Yes: true,
	}, &scriptedPrompter{})
	var capErr *domain.DailyCapExceededError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 9*time.Hour, capErr.Logged)
	assert.Empty(t, tempo.Created)
}

func TestWorklogService_Log_DeclineAborts(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))

	_, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "TSI-1", Day: testDay, Duration: time.Hour,
	}, &scriptedPrompter{acceptLog: false})
	assert.ErrorIs(t, err, domain.ErrAborted)
	assert.Empty(t, tempo.Created)
}

func TestWorklogService_Log_InvalidInterval(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	svc := NewWorklogService(jira, &testutil.FakeTempo{}, newIssueRepo(t))

	_, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "TSI-1", Day: testDay, Start: tod(12, 0), End: tod(11, 0), Yes: true,
	}, &scriptedPrompter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

func TestWorklogService_Log_SingleSuggestionConfirmed(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))
	prompter := &scriptedPrompter{acceptSuggestion: true}

	res, err := svc.Log(context.Background(), testRunContext(domain.Aliases{"opt": "TSI-1"}), app.LogRequest{
		Issue: "op", Day: testDay, Duration: time.Hour, Yes: true,
	}, prompter)
	require.NoError(t, err)
	require.Len(t, prompter.suggestions, 1)
	assert.Equal(t, domain.Candidate{Key: "TSI-1", Hint: "alias for opt"}, prompter.suggestions[0])
	assert.Equal(t, "TSI-1", res.Worklog.Issue.Key)
}

func TestWorklogService_Log_SingleSuggestionDeclined(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))

	_, err := svc.Log(context.Background(), testRunContext(domain.Aliases{"opt": "TSI-1"}), app.LogRequest{
		Issue: "op", Day: testDay, Duration: time.Hour, Yes: true,
	}, &scriptedPrompter{acceptSuggestion: false})
	assert.ErrorIs(t, err, domain.ErrAborted)
	assert.Empty(t, tempo.Created)
}

func TestWorklogService_Log_UnknownIssueListsCachedMatches(t *testing.T) {
	jira := testutil.NewFakeJira()
	cached := []domain.Issue{
		testutil.NewTestIssue("OPS-1", testutil.WithIssueSummary("Release planning")),
		testutil.NewTestIssue("OPS-2", testutil.WithIssueSummary("Release notes")),
	}
	svc := NewWorklogService(jira, &testutil.FakeTempo{}, newIssueRepo(t, cached...))

	_, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "release", Day: testDay, Duration: time.Hour, Yes: true,
	}, &scriptedPrompter{})
	var resErr *domain.IssueResolutionError
	require.True(t, errors.As(err, &resErr))
	require.Len(t, resErr.Candidates, 2)
	assert.Equal(t, "OPS-1", resErr.Candidates[0].Key)
}

func TestWorklogService_Log_ReportsUseCase(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	obs := &recordingObserver{}
	svc := NewWorklogService(jira, &testutil.FakeTempo{}, newIssueRepo(t), obs)

	_, err := svc.Log(context.Background(), testRunContext(nil), app.LogRequest{
		Issue: "TSI-1", Day: testDay, Duration: time.Hour, Yes: true,
	}, &scriptedPrompter{})
	require.NoError(t, err)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "log", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, int64(3600), obs.events[0].Fields["seconds"])
}

func TestWorklogService_LogMany_ChainsEntriesAndAggregatesErrors(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"), testutil.NewTestIssue("OPS-3"))
	tempo := &testutil.FakeTempo{}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))

	results, err := svc.LogMany(context.Background(), testRunContext(domain.Aliases{"opt": "TSI-1"}),
		"opt:2h, nope, OPS-3:1h30m", app.LogRequest{Day: testDay, Yes: true}, &scriptedPrompter{})
	require.Error(t, err)
	var parseErr *domain.ParseError
	assert.True(t, errors.As(err, &parseErr))

	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Result)
	assert.Error(t, results[1].Err)
	assert.NotNil(t, results[2].Result)

	require.Len(t, tempo.Created, 2)
	assert.Equal(t, at(9, 0), tempo.Created[0].Started)
	assert.Equal(t, at(11, 0), tempo.Created[1].Started)
	assert.Equal(t, int64(5400), tempo.Created[1].Seconds)
}

func TestWorklogService_LogMany_DeclinedEntryIsSkipped(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"))
	tempo := &testutil.FakeTempo{}
	svc := NewWorklogService(jira, tempo, newIssueRepo(t))

	results, err := svc.LogMany(context.Background(), testRunContext(nil),
		"TSI-1:1h", app.LogRequest{Day: testDay}, &scriptedPrompter{acceptLog: false})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.Empty(t, tempo.Created)
}
