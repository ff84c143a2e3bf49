package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBudget_SplitsRemainingByShare(t *testing.T) {
	issue := testutil.NewTestIssue("TSI-7", testutil.WithTimeTracking(20*time.Hour, 8*time.Hour, 12*time.Hour))
	b := ComputeBudget(issue, []domain.IssueWorklog{
		{AuthorName: "Jane", Seconds: 9 * 3600},
		{AuthorName: "Bob", Seconds: 3 * 3600},
	})

	assert.Equal(t, int64(20*3600), b.Estimate)
	assert.Equal(t, int64(12*3600), b.Spent)
	require.Len(t, b.People, 2)
	assert.Equal(t, "Jane", b.People[0].Name)
	assert.Equal(t, int64(6*3600), b.People[0].Remaining)
	assert.Equal(t, int64(2*3600), b.People[1].Remaining)
}

func TestComputeBudget_NoRemaining(t *testing.T) {
	issue := testutil.NewTestIssue("TSI-7", testutil.WithTimeTracking(2*time.Hour, 0, 3*time.Hour))
	b := ComputeBudget(issue, []domain.IssueWorklog{
		{AuthorName: "Jane", Seconds: 3600},
		{AuthorName: "Jane", Seconds: 7200},
	})
	require.Len(t, b.People, 1)
	assert.Equal(t, int64(10800), b.People[0].Spent)
	assert.Zero(t, b.People[0].Remaining)
}

func TestBudgetService_DefaultsToMostRecentIssue(t *testing.T) {
	jira := testutil.NewFakeJira(testutil.NewTestIssue("TSI-1"), testutil.NewTestIssue("OPS-2"))
	jira.Worklogs["OPS-2"] = []domain.IssueWorklog{{AuthorName: "Jane", Seconds: 3600}}
	tempo := &testutil.FakeTempo{Existing: []domain.Worklog{
		testutil.NewTestWorklog("TSI-1", at(9, 0).AddDate(0, 0, -3), time.Hour),
		testutil.NewTestWorklog("OPS-2", at(9, 0).AddDate(0, 0, -1), time.Hour),
	}}
	svc := NewBudgetService(jira, tempo)

	b, err := svc.Budget(context.Background(), testRunContext(domain.Aliases{"ops": "OPS-2"}), "")
	require.NoError(t, err)
	assert.True(t, b.AutoSelected)
	assert.Equal(t, "OPS-2", b.Issue.Key)
	assert.Equal(t, "ops", b.Alias)
	require.Len(t, b.People, 1)
}

func TestBudgetService_NoRecentIssue(t *testing.T) {
	svc := NewBudgetService(testutil.NewFakeJira(), &testutil.FakeTempo{})
	_, err := svc.Budget(context.Background(), testRunContext(nil), "")
	assert.ErrorIs(t, err, ErrNoRecentIssue)
}
