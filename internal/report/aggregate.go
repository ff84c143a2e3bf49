// Package report folds worklogs into per-project and per-day totals and
// renders the stats and list views.
package report

import (
	"sort"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
)

// ProjectNamer maps an issue to the name it is grouped under.
type ProjectNamer interface {
	DisplayName(issueKey string) string
}

// ProjectStats is the aggregate for one display name.
type ProjectStats struct {
	Name     string
	Summary  string
	Seconds  int64
	Worklogs []domain.Worklog
	Days     map[domain.Date]domain.DailyBucket
}

// Duration returns the project's total logged time.
func (p ProjectStats) Duration() time.Duration {
	return time.Duration(p.Seconds) * time.Second
}

// SortedDays returns the days with logged time in chronological order.
func (p ProjectStats) SortedDays() []domain.Date {
	days := make([]domain.Date, 0, len(p.Days))
	for d := range p.Days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Report is the aggregation of all worklogs in a range.
type Report struct {
	Range    domain.DateRange
	Projects []ProjectStats
	Seconds  int64
}

// Duration returns the grand total.
func (r Report) Duration() time.Duration {
	return time.Duration(r.Seconds) * time.Second
}

// Aggregate groups worklogs by display name and day. Projects are sorted
// by total time, descending; ties keep discovery order.
func Aggregate(rng domain.DateRange, worklogs []domain.Worklog, namer ProjectNamer) Report {
	index := make(map[string]int)
	var projects []ProjectStats
	var total int64

	for _, w := range worklogs {
		name := namer.DisplayName(w.Issue.Key)
		i, ok := index[name]
		if !ok {
			i = len(projects)
			index[name] = i
			projects = append(projects, ProjectStats{
				Name:    name,
				Summary: w.Issue.Summary,
				Days:    make(map[domain.Date]domain.DailyBucket),
			})
		}
		p := &projects[i]
		p.Seconds += w.Seconds
		p.Worklogs = append(p.Worklogs, w)
		day := w.Day()
		p.Days[day] = p.Days[day].Add(w.Seconds, w.Comment)
		total += w.Seconds
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Seconds > projects[j].Seconds
	})

	return Report{Range: rng, Projects: projects, Seconds: total}
}
