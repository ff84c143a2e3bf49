package domain

import "time"

// IssueRef identifies the issue a worklog was booked on.
type IssueRef struct {
	ID         string
	Key        string
	Summary    string
	ProjectKey string
}

// Worklog is a time entry as returned by the time-booking service. The
// core only reads worklogs.
type Worklog struct {
	ID      string
	Started time.Time
	Seconds int64
	Issue   IssueRef
	Author  string
	Comment string
}

// Duration returns the logged time span.
func (w Worklog) Duration() time.Duration {
	return time.Duration(w.Seconds) * time.Second
}

// End returns the instant the worklog ends.
func (w Worklog) End() time.Time {
	return w.Started.Add(w.Duration())
}

// Day returns the calendar day the worklog started on.
func (w Worklog) Day() Date {
	return DateOf(w.Started)
}

// DailyBucket accumulates time and distinct comments for one day.
type DailyBucket struct {
	Seconds  int64
	Comments []string
}

// Add folds a worklog's seconds and comment into the bucket. Empty and
// duplicate comments are skipped.
func (b DailyBucket) Add(seconds int64, comment string) DailyBucket {
	b.Seconds += seconds
	if comment == "" {
		return b
	}
	for _, c := range b.Comments {
		if c == comment {
			return b
		}
	}
	b.Comments = append(append([]string(nil), b.Comments...), comment)
	return b
}

// NewWorklog is the payload for booking time on an issue.
type NewWorklog struct {
	WorkerKey string
	IssueID   string
	IssueKey  string
	Started   time.Time
	Seconds   int64
	Comment   string
}
