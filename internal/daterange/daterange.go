// Package daterange resolves symbolic date-range names ("week",
// "last-month", ...) to concrete inclusive ranges and classifies ranges by
// span for axis labelling.
package daterange

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/lt/internal/domain"
)

// Name is a canonical relative date range name.
type Name string

const (
	Today     Name = "today"
	Yesterday Name = "yesterday"
	Week      Name = "week"
	LastWeek  Name = "last-week"
	Month     Name = "month"
	LastMonth Name = "last-month"
	Year      Name = "year"
	LastYear  Name = "last-year"
)

// Names lists the canonical names in display order.
var Names = []Name{Today, Yesterday, Week, LastWeek, Month, LastMonth, Year, LastYear}

// builtinAbbreviations maps each name to its short forms. "y" belongs to
// year; yesterday is "yd".
var builtinAbbreviations = map[Name][]string{
	Today:     {"d", "td"},
	Yesterday: {"yd"},
	Week:      {"w"},
	LastWeek:  {"lw"},
	Month:     {"m"},
	LastMonth: {"lm"},
	Year:      {"y"},
	LastYear:  {"ly"},
}

// Resolver matches user input against names and abbreviations.
type Resolver struct {
	lookup map[string]Name
	abbrev map[Name][]string
}

// NewResolver builds a resolver from the built-in vocabulary plus custom
// abbreviations (abbreviation -> name). A custom abbreviation that shadows
// a built-in one or targets an unknown name is an error.
func NewResolver(custom map[string]string) (*Resolver, error) {
	r := &Resolver{
		lookup: make(map[string]Name),
		abbrev: make(map[Name][]string),
	}
	for _, name := range Names {
		r.lookup[string(name)] = name
		for _, a := range builtinAbbreviations[name] {
			r.lookup[a] = name
			r.abbrev[name] = append(r.abbrev[name], a)
		}
	}

	keys := make([]string, 0, len(custom))
	for k := range custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		abbr := strings.ToLower(strings.TrimSpace(k))
		target := Name(strings.ToLower(strings.TrimSpace(custom[k])))
		if _, known := builtinAbbreviations[target]; !known {
			return nil, fmt.Errorf("abbreviation %q refers to unknown date range %q", abbr, target)
		}
		if existing, taken := r.lookup[abbr]; taken {
			return nil, fmt.Errorf("abbreviation %q is already used by %q", abbr, existing)
		}
		r.lookup[abbr] = target
		r.abbrev[target] = append(r.abbrev[target], abbr)
	}
	return r, nil
}

// DefaultResolver returns a resolver with only the built-in vocabulary.
func DefaultResolver() *Resolver {
	r, _ := NewResolver(nil)
	return r
}

// Resolve matches input case-insensitively against names and abbreviations.
func (r *Resolver) Resolve(input string) (Name, error) {
	if name, ok := r.lookup[strings.ToLower(strings.TrimSpace(input))]; ok {
		return name, nil
	}
	valid := make([]string, len(Names))
	for i, n := range Names {
		valid[i] = string(n)
	}
	return "", &domain.UnknownRangeError{Input: input, Valid: valid}
}

// Abbreviations returns the short forms accepted for name.
func (r *Resolver) Abbreviations(name Name) []string {
	return append([]string(nil), r.abbrev[name]...)
}

// ResolveRange resolves input and anchors it on today.
func (r *Resolver) ResolveRange(input string, today domain.Date) (Name, domain.DateRange, error) {
	name, err := r.Resolve(input)
	if err != nil {
		return "", domain.DateRange{}, err
	}
	rng, err := Parse(name, today)
	return name, rng, err
}

// Parse returns the inclusive range for name anchored on today.
func Parse(name Name, today domain.Date) (domain.DateRange, error) {
	switch name {
	case Today:
		return domain.DateRange{From: today, To: today}, nil
	case Yesterday:
		y := today.AddDays(-1)
		return domain.DateRange{From: y, To: y}, nil
	case Week:
		return domain.DateRange{From: today.Monday(), To: today}, nil
	case LastWeek:
		monday := today.Monday().AddDays(-7)
		return domain.DateRange{From: monday, To: monday.AddDays(6)}, nil
	case Month:
		return domain.DateRange{From: domain.NewDate(today.Year, today.Month, 1), To: today}, nil
	case LastMonth:
		first := domain.NewDate(today.Year, today.Month-1, 1)
		last := domain.NewDate(today.Year, today.Month, 1).AddDays(-1)
		return domain.DateRange{From: first, To: last}, nil
	case Year:
		return domain.DateRange{From: domain.NewDate(today.Year, 1, 1), To: today}, nil
	case LastYear:
		return domain.DateRange{
			From: domain.NewDate(today.Year-1, 1, 1),
			To:   domain.NewDate(today.Year-1, 12, 31),
		}, nil
	default:
		return domain.DateRange{}, &domain.UnknownRangeError{Input: string(name)}
	}
}

// Classify buckets a range by the number of days between its bounds:
// up to 13 days apart is weekly, up to 59 monthly, anything longer yearly.
func Classify(from, to domain.Date) domain.RangeBucket {
	delta := from.DaysUntil(to)
	switch {
	case delta <= 13:
		return domain.BucketWeekly
	case delta <= 59:
		return domain.BucketMonthly
	default:
		return domain.BucketYearly
	}
}
