package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var issueKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]+-[0-9]+$`)

// Project is a Jira project as listed in the project cache.
type Project struct {
	Key  string
	Name string
}

// Issue is a Jira issue with the fields the CLI reads.
type Issue struct {
	ID           string
	Key          string
	Summary      string
	ProjectKey   string
	TimeTracking TimeTracking
}

// Ref returns the worklog-facing reference to the issue.
func (i Issue) Ref() IssueRef {
	return IssueRef{ID: i.ID, Key: i.Key, Summary: i.Summary, ProjectKey: i.ProjectKey}
}

// TimeTracking holds an issue's estimate and logged time in seconds.
type TimeTracking struct {
	OriginalEstimateSeconds  int64
	RemainingEstimateSeconds int64
	TimeSpentSeconds         int64
}

// IssueWorklog is a worklog as recorded on the issue itself, used for
// budget breakdowns per person.
type IssueWorklog struct {
	AuthorName string
	Seconds    int64
}

// LooksLikeIssueKey reports whether s has the PROJ-123 shape.
func LooksLikeIssueKey(s string) bool {
	return issueKeyPattern.MatchString(strings.ToUpper(s))
}

// ProjectKeyOf returns the project part of an issue key.
func ProjectKeyOf(issueKey string) (string, error) {
	idx := strings.LastIndex(issueKey, "-")
	if idx <= 0 {
		return "", fmt.Errorf("issue key %q has no project prefix", issueKey)
	}
	return issueKey[:idx], nil
}

// User is the authenticated Jira account.
type User struct {
	Name        string
	Key         string
	DisplayName string
}
