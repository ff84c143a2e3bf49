// Package timefmt parses and formats the durations, times of day and dates
// users type on the command line.
package timefmt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

var (
	bareHoursPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	durationPattern  = regexp.MustCompile(`^(?:(\d+(?:\.\d+)?)h)?(?:(\d+)(m)?)?$`)
	timePattern      = regexp.MustCompile(`^(\d{1,2})(?::(\d{1,2}))?$`)
	datePattern      = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.?(\d{4})?$`)
)

// maxDuration is the largest whole-second Duration.
const maxDuration = time.Duration(math.MaxInt64) / time.Second * time.Second

// ParseDuration parses "8" (hours), "1.5", "2h", "90m", "1h30m" and "5h30"
// (minutes after an hour unit).
func ParseDuration(text string) (time.Duration, error) {
	s := strings.ToLower(strings.Join(strings.Fields(text), ""))
	if s == "" {
		return 0, &domain.ParseError{Kind: "duration", Input: text, Reason: "empty"}
	}
	if strings.HasPrefix(s, "-") {
		return 0, &domain.ParseError{Kind: "duration", Input: text, Reason: "must not be negative"}
	}

	if bareHoursPattern.MatchString(s) {
		hours, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &domain.ParseError{Kind: "duration", Input: text}
		}
		d, ok := hoursDuration(hours)
		if !ok {
			return 0, errDurationTooLarge(text)
		}
		return roundSeconds(d), nil
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, &domain.ParseError{Kind: "duration", Input: text, Reason: `expected e.g. "8", "2h", "90m" or "1h30m"`}
	}
	// A bare trailing number is only minutes when it follows an hour unit.
	if m[1] == "" && m[3] == "" {
		return 0, &domain.ParseError{Kind: "duration", Input: text}
	}

	var d time.Duration
	if m[1] != "" {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, &domain.ParseError{Kind: "duration", Input: text}
		}
		hd, ok := hoursDuration(hours)
		if !ok {
			return 0, errDurationTooLarge(text)
		}
		d = hd
	}
	if m[2] != "" {
		minutes, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || minutes > int64((maxDuration-d)/time.Minute) {
			return 0, errDurationTooLarge(text)
		}
		d += time.Duration(minutes) * time.Minute
	}
	return roundSeconds(d), nil
}

// hoursDuration converts hours to a Duration, reporting false when the
// result does not fit.
func hoursDuration(hours float64) (time.Duration, bool) {
	ns := hours * float64(time.Hour)
	if ns > float64(maxDuration) || math.IsNaN(ns) {
		return 0, false
	}
	return time.Duration(ns), true
}

func errDurationTooLarge(text string) error {
	return &domain.ParseError{Kind: "duration", Input: text, Reason: "too large"}
}

// ParseTime parses "9", "9:30" and "09:30".
func ParseTime(text string) (domain.TimeOfDay, error) {
	s := strings.TrimSpace(text)
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return domain.TimeOfDay{}, &domain.ParseError{Kind: "time", Input: text, Reason: `expected e.g. "9" or "9:30"`}
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 {
		return domain.TimeOfDay{}, &domain.ParseError{Kind: "time", Input: text, Reason: "hour must be between 0 and 23"}
	}
	if minute > 59 {
		return domain.TimeOfDay{}, &domain.ParseError{Kind: "time", Input: text, Reason: "minute must be between 0 and 59"}
	}
	return domain.TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseDate parses "today", "yesterday", "dd.mm" (year of today),
// "dd.mm.yyyy" and "yyyy-mm-dd".
func ParseDate(text string, today domain.Date) (domain.Date, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	switch s {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return domain.DateOf(t), nil
	}

	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return domain.Date{}, &domain.ParseError{Kind: "date", Input: text, Reason: `expected "today", "yesterday", "dd.mm" or "dd.mm.yyyy"`}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := today.Year
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}
	if month < 1 || month > 12 {
		return domain.Date{}, &domain.ParseError{Kind: "date", Input: text, Reason: "month must be between 1 and 12"}
	}
	d := domain.NewDate(year, time.Month(month), day)
	if day < 1 || d.Day != day {
		return domain.Date{}, &domain.ParseError{Kind: "date", Input: text, Reason: "no such day"}
	}
	return d, nil
}

func roundSeconds(d time.Duration) time.Duration {
	return time.Duration(math.Round(d.Seconds())) * time.Second
}
