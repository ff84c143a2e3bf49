package sparkline

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lt/internal/domain"
)

// AxisLabels returns a label row aligned with Render's output for r:
// empty for weekly ranges, W1, W2, ... at the first workday of each ISO
// week for monthly ranges, and month abbreviations at the first workday of
// each month for yearly ranges.
func AxisLabels(r domain.DateRange, bucket domain.RangeBucket) string {
	if bucket == domain.BucketWeekly {
		return ""
	}
	days := r.Workdays()
	if len(days) == 0 {
		return ""
	}

	row := []rune(strings.Repeat(" ", len(days)))
	next := 0 // first free position
	place := func(pos int, label string) {
		l := []rune(label)
		if pos < next || pos+len(l) > len(row) {
			return
		}
		copy(row[pos:], l)
		next = pos + len(l) + 1
	}

	switch bucket {
	case domain.BucketMonthly:
		week := 0
		prevYear, prevWeek := 0, 0
		for i, d := range days {
			y, w := d.ISOWeek()
			if y == prevYear && w == prevWeek {
				continue
			}
			prevYear, prevWeek = y, w
			week++
			place(i, fmt.Sprintf("W%d", week))
		}
	case domain.BucketYearly:
		var prev domain.Date
		for i, d := range days {
			if i > 0 && d.Year == prev.Year && d.Month == prev.Month {
				continue
			}
			prev = d
			place(i, d.Month.String()[:3])
		}
	}

	return strings.TrimRight(string(row), " ")
}
