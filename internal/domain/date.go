package domain

import (
	"fmt"
	"time"
)

// Date is a calendar day without a time-of-day component. It is comparable
// and used as a map key for per-day aggregation.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date for the given components, so
// NewDate(2024, 1, 32) is 2024-02-01.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other (negative if other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.utc().Sub(d.utc()).Hours() / 24)
}

func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// IsWorkday reports whether d falls on Monday through Friday.
func (d Date) IsWorkday() bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// ISOWeek returns the ISO 8601 year and week number of d.
func (d Date) ISOWeek() (year, week int) {
	return d.utc().ISOWeek()
}

// Monday returns the Monday of d's week.
func (d Date) Monday() Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func (d Date) Before(other Date) bool { return d.utc().Before(other.utc()) }
func (d Date) After(other Date) bool  { return d.utc().After(other.utc()) }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format formats d with a time layout, e.g. "02.01".
func (d Date) Format(layout string) string {
	return d.utc().Format(layout)
}

// DateRange is an inclusive pair of calendar days with From <= To.
type DateRange struct {
	From Date
	To   Date
}

// NewDateRange returns the range [from, to], swapping the bounds if needed.
func NewDateRange(from, to Date) DateRange {
	if to.Before(from) {
		from, to = to, from
	}
	return DateRange{From: from, To: to}
}

// Days returns the inclusive number of calendar days in r.
func (r DateRange) Days() int {
	return r.From.DaysUntil(r.To) + 1
}

func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Workdays returns the Monday-to-Friday days of r in chronological order.
func (r DateRange) Workdays() []Date {
	var days []Date
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		if d.IsWorkday() {
			days = append(days, d)
		}
	}
	return days
}

func (r DateRange) String() string {
	if r.From == r.To {
		return r.From.String()
	}
	return r.From.String() + " - " + r.To.String()
}

// RangeBucket selects the axis-label granularity for a date range.
type RangeBucket string

const (
	BucketWeekly  RangeBucket = "weekly"
	BucketMonthly RangeBucket = "monthly"
	BucketYearly  RangeBucket = "yearly"
)
