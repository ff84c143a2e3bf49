package testutil

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

var testIDCounter atomic.Int64

func nextID() string {
	return strconv.FormatInt(testIDCounter.Add(1), 10)
}

// Worklog options
type WorklogOption func(*domain.Worklog)

func WithComment(c string) WorklogOption {
	return func(w *domain.Worklog) {
		w.Comment = c
	}
}

func WithAuthor(a string) WorklogOption {
	return func(w *domain.Worklog) {
		w.Author = a
	}
}

func WithSummary(s string) WorklogOption {
	return func(w *domain.Worklog) {
		w.Issue.Summary = s
	}
}

func WithIssueID(id string) WorklogOption {
	return func(w *domain.Worklog) {
		w.Issue.ID = id
	}
}

// NewTestWorklog creates a worklog on issueKey starting at started.
func NewTestWorklog(issueKey string, started time.Time, d time.Duration, opts ...WorklogOption) domain.Worklog {
	projectKey, _ := domain.ProjectKeyOf(issueKey)
	w := domain.Worklog{
		ID:      nextID(),
		Started: started,
		Seconds: int64(d / time.Second),
		Issue: domain.IssueRef{
			ID:         nextID(),
			Key:        issueKey,
			Summary:    "Summary of " + issueKey,
			ProjectKey: projectKey,
		},
		Author:  "JIRAUSER1",
		Comment: "",
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

// Issue options
type IssueOption func(*domain.Issue)

func WithIssueSummary(s string) IssueOption {
	return func(i *domain.Issue) {
		i.Summary = s
	}
}

func WithTimeTracking(estimate, remaining, spent time.Duration) IssueOption {
	return func(i *domain.Issue) {
		i.TimeTracking = domain.TimeTracking{
			OriginalEstimateSeconds:  int64(estimate / time.Second),
			RemainingEstimateSeconds: int64(remaining / time.Second),
			TimeSpentSeconds:         int64(spent / time.Second),
		}
	}
}

// NewTestIssue creates an issue with a generated id.
func NewTestIssue(key string, opts ...IssueOption) domain.Issue {
	projectKey, _ := domain.ProjectKeyOf(key)
	i := domain.Issue{
		ID:         nextID(),
		Key:        key,
		Summary:    "Summary of " + key,
		ProjectKey: projectKey,
	}
	for _, opt := range opts {
		opt(&i)
	}
	return i
}

// TestUser is the account the fake Jira reports as authenticated.
var TestUser = domain.User{Name: "jdoe", Key: "JIRAUSER1", DisplayName: "Jane Doe"}
