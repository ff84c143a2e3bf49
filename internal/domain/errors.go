package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidInterval indicates start/end/duration input that yields an
	// empty or negative logged interval.
	ErrInvalidInterval = errors.New("invalid time interval")

	// ErrAborted indicates the user declined a confirmation prompt.
	ErrAborted = errors.New("aborted")
)

// ParseError reports malformed duration, time, date or entry text.
type ParseError struct {
	Kind   string
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s %q", e.Kind, e.Input)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

// UnknownRangeError reports an unrecognized relative date range name.
type UnknownRangeError struct {
	Input string
	Valid []string
}

func (e *UnknownRangeError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown date range %q", e.Input)
	}
	return fmt.Sprintf("unknown date range %q (valid: %s)", e.Input, strings.Join(e.Valid, ", "))
}

// Candidate is a suggested issue for an unresolved input.
type Candidate struct {
	Key  string
	Hint string
}

// IssueResolutionError reports an issue that could not be found, along
// with any similar issues.
type IssueResolutionError struct {
	Input      string
	Candidates []Candidate
	Err        error
}

func (e *IssueResolutionError) Error() string {
	msg := fmt.Sprintf("issue %q not found", e.Input)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Candidates) > 0 {
		keys := make([]string, len(e.Candidates))
		for i, c := range e.Candidates {
			keys[i] = c.Key
		}
		msg += "; did you mean: " + strings.Join(keys, ", ")
	}
	return msg
}

func (e *IssueResolutionError) Unwrap() error { return e.Err }

// DailyCapExceededError reports that logging would push a day over the cap.
type DailyCapExceededError struct {
	Logged    time.Duration
	Requested time.Duration
	Cap       time.Duration
}

func (e *DailyCapExceededError) Error() string {
	return fmt.Sprintf("you already have %s logged on that day, cannot log %s more (limit %s per day)",
		compactDuration(e.Logged), compactDuration(e.Requested), compactDuration(e.Cap))
}

// OverlapWarning describes an existing worklog that intersects a new entry.
// It never blocks logging.
type OverlapWarning struct {
	Existing Worklog
}

func (w OverlapWarning) String() string {
	return fmt.Sprintf("the time entry overlaps with an existing worklog from %s to %s",
		w.Existing.Started.Format("15:04"), w.Existing.End().Format("15:04"))
}

func compactDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
