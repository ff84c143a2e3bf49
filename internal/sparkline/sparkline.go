// Package sparkline renders per-day totals as a one-line block-character
// histogram over the workdays of a range, with an aligned label row.
package sparkline

import (
	"strings"

	"github.com/alexanderramin/lt/internal/domain"
)

// levels holds the eight non-blank intensities from lowest to highest.
var levels = []rune("▁▂▃▄▅▆▇█")

const blank = ' '

// Options bounds the value scale in hours. When Maximum is not greater than
// Minimum the observed maximum is used.
type Options struct {
	Minimum float64
	Maximum float64
}

// DefaultOptions scales an 8-hour day to a full block.
var DefaultOptions = Options{Minimum: 0, Maximum: 8}

// Render returns one rune per workday of r. It returns "" when the range
// has no workdays or no time was logged on any of them.
func Render(daily map[domain.Date]domain.DailyBucket, r domain.DateRange, opts Options) string {
	days := r.Workdays()
	if len(days) == 0 {
		return ""
	}

	hours := make([]float64, len(days))
	observed := 0.0
	for i, d := range days {
		hours[i] = float64(daily[d].Seconds) / 3600
		if hours[i] > observed {
			observed = hours[i]
		}
	}
	if observed == 0 {
		return ""
	}

	lo, hi := opts.Minimum, opts.Maximum
	if hi <= lo {
		lo, hi = 0, observed
	}

	var b strings.Builder
	for _, h := range hours {
		b.WriteRune(glyph(h, lo, hi))
	}
	return b.String()
}

func glyph(value, lo, hi float64) rune {
	if value <= 0 {
		return blank
	}
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	idx := int((value - lo) / (hi - lo) * float64(len(levels)))
	if idx >= len(levels) {
		idx = len(levels) - 1
	}
	return levels[idx]
}
