// Package booking holds the pure steps of turning a log request into a
// worklog: issue matching, interval arithmetic, overlap and cap checks.
package booking

import (
	"fmt"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

// DailyCap is the most time that may be logged on a single day.
const DailyCap = 10 * time.Hour

// DefaultStart is used when neither a flag, an earlier worklog nor the
// configuration provide a start time.
var DefaultStart = domain.TimeOfDay{Hour: 9}

// Interval is the half-open span [Start, End) of a new worklog.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether iv intersects [start, end).
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// IntervalRequest collects what the user asked for. Start and End are nil
// when the flag was not given.
type IntervalRequest struct {
	Day          domain.Date
	Location     *time.Location
	Start        *domain.TimeOfDay
	End          *domain.TimeOfDay
	Duration     time.Duration
	Lunch        time.Duration
	DefaultStart *domain.TimeOfDay
}

// StartTime picks the start of the new worklog: the explicit start, else
// the end of the last worklog that day, else the configured default, else
// DefaultStart. dayWorklogs must be in chronological order.
func StartTime(req IntervalRequest, dayWorklogs []domain.Worklog) time.Time {
	switch {
	case req.Start != nil:
		return req.Start.On(req.Day, req.Location)
	case len(dayWorklogs) > 0:
		return dayWorklogs[len(dayWorklogs)-1].End()
	case req.DefaultStart != nil:
		return req.DefaultStart.On(req.Day, req.Location)
	default:
		return DefaultStart.On(req.Day, req.Location)
	}
}

// ComputeInterval resolves start, end and duration. An explicit end wins
// over the requested duration; lunch is subtracted from the duration and
// shifts the end back. Negative inputs and non-positive results yield
// ErrInvalidInterval.
func ComputeInterval(req IntervalRequest, dayWorklogs []domain.Worklog) (Interval, error) {
	if req.Duration < 0 || req.Lunch < 0 {
		return Interval{}, fmt.Errorf("negative duration or lunch: %w", domain.ErrInvalidInterval)
	}
	start := StartTime(req, dayWorklogs)

	var end time.Time
	if req.End != nil {
		end = req.End.On(req.Day, req.Location)
	} else {
		end = start.Add(req.Duration)
	}
	end = end.Add(-req.Lunch)

	iv := Interval{Start: start, End: end.Truncate(time.Second)}
	if iv.Duration() <= 0 {
		return Interval{}, fmt.Errorf("%s - %s: %w", start.Format("15:04"), end.Format("15:04"), domain.ErrInvalidInterval)
	}
	return iv, nil
}

// DetectOverlaps returns one warning per existing worklog intersecting iv.
func DetectOverlaps(iv Interval, existing []domain.Worklog) []domain.OverlapWarning {
	var warnings []domain.OverlapWarning
	for _, w := range existing {
		if iv.Overlaps(w.Started, w.End()) {
			warnings = append(warnings, domain.OverlapWarning{Existing: w})
		}
	}
	return warnings
}

// LoggedSeconds sums the time of worklogs.
func LoggedSeconds(worklogs []domain.Worklog) int64 {
	var total int64
	for _, w := range worklogs {
		total += w.Seconds
	}
	return total
}

// CheckDailyCap fails when adding requested to what is already logged
// exceeds limit. Reaching the limit exactly is allowed.
func CheckDailyCap(existing []domain.Worklog, requested, limit time.Duration) error {
	logged := time.Duration(LoggedSeconds(existing)) * time.Second
	if logged+requested > limit {
		return &domain.DailyCapExceededError{Logged: logged, Requested: requested, Cap: limit}
	}
	return nil
}
