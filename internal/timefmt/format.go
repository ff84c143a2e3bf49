package timefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

// WorkdayHours is the length of one workday in FormatDurationWorkdays.
const WorkdayHours = 8

// FormatDuration renders d as "XhYm", omitting zero components.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}
	total := int64(d.Round(time.Minute) / time.Minute)
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatDurationWorkdays renders seconds as 8-hour workdays plus remaining
// hours, e.g. " 2d 3h" for maxDayDigits 2.
func FormatDurationWorkdays(seconds int64, maxDayDigits int) string {
	if maxDayDigits < 1 {
		maxDayDigits = 1
	}
	day := int64(WorkdayHours * 3600)
	days := seconds / day
	hours := (seconds % day) / 3600
	return fmt.Sprintf("%*dd %dh", maxDayDigits, days, hours)
}

// FormatDurationAligned renders d with a fixed width so durations line up
// in a column: hours right-aligned to hourDigits, minutes always two digits
// or blank.
func FormatDurationAligned(d time.Duration, hourDigits int) string {
	if hourDigits < 1 {
		hourDigits = 1
	}
	total := int64(d.Round(time.Minute) / time.Minute)
	h, m := total/60, total%60
	hours := fmt.Sprintf("%*dh", hourDigits, h)
	if m == 0 {
		return hours + strings.Repeat(" ", 4)
	}
	return fmt.Sprintf("%s %02dm", hours, m)
}

// FormatDateRelative renders d as "today", "yesterday" or a weekday name
// within the last six days, otherwise as an absolute date.
func FormatDateRelative(d, today domain.Date) string {
	ago := d.DaysUntil(today)
	switch {
	case ago == 0:
		return "today"
	case ago == 1:
		return "yesterday"
	case ago > 1 && ago <= 6:
		return d.Weekday().String()
	default:
		return d.String()
	}
}
