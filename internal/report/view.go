package report

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/lt/internal/daterange"
	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/sparkline"
	"github.com/alexanderramin/lt/internal/timefmt"
)

const (
	maxNameWidth = 20
	minNameWidth = len("Total")
)

// StatsOptions controls the stats view.
type StatsOptions struct {
	Sparkline bool
	Verbose   int
}

// DayDetail is one drill-down line under a project.
type DayDetail struct {
	Day      string
	Duration string
	Comments string
}

// StatsRow is one project line of the stats view.
type StatsRow struct {
	Duration  string
	Name      string
	Sparkline string
	Details   []DayDetail
}

// StatsView is the fully laid-out stats report; the formatter only styles it.
type StatsView struct {
	Rows       []StatsRow
	Total      string
	TotalLabel string
	Axis       string
	Bucket     domain.RangeBucket
}

// BuildStatsView lays out rep for display. Axis labels are only set when
// at least one sparkline was rendered and the range is not weekly.
func BuildStatsView(rep Report, opts StatsOptions) StatsView {
	width := nameWidth(rep.Projects)
	digits := len(strconv.FormatInt(rep.Seconds/(timefmt.WorkdayHours*3600), 10))

	view := StatsView{
		Total:      timefmt.FormatDurationWorkdays(rep.Seconds, digits),
		TotalLabel: padRight("Total", width),
		Bucket:     daterange.Classify(rep.Range.From, rep.Range.To),
	}

	rendered := false
	for _, p := range rep.Projects {
		row := StatsRow{
			Duration: timefmt.FormatDurationWorkdays(p.Seconds, digits),
			Name:     fitName(p.Name, width),
		}
		if opts.Sparkline {
			row.Sparkline = sparkline.Render(p.Days, rep.Range, sparkline.DefaultOptions)
			rendered = rendered || row.Sparkline != ""
		}
		if opts.Verbose > 0 {
			for _, d := range p.SortedDays() {
				bucket := p.Days[d]
				row.Details = append(row.Details, DayDetail{
					Day:      d.Format("02.01"),
					Duration: timefmt.FormatDurationAligned(time.Duration(bucket.Seconds)*time.Second, 2),
					Comments: strings.Join(bucket.Comments, "; "),
				})
			}
		}
		view.Rows = append(view.Rows, row)
	}

	if rendered && view.Bucket != domain.BucketWeekly {
		view.Axis = sparkline.AxisLabels(rep.Range, view.Bucket)
	}
	return view
}

// ListRow is one line of the list view.
type ListRow struct {
	Date     string
	Time     string
	Duration string
	Project  string
	Issue    string
	Comment  string
}

// BuildListRows lays out worklogs in order; the date is only shown on the
// first worklog of each day.
func BuildListRows(worklogs []domain.Worklog, namer ProjectNamer) []ListRow {
	rows := make([]ListRow, 0, len(worklogs))
	var prev domain.Date
	for i, w := range worklogs {
		day := w.Day()
		date := ""
		if i == 0 || day != prev {
			date = day.Format("02.01")
		}
		prev = day
		rows = append(rows, ListRow{
			Date:     date,
			Time:     w.Started.Format("15:04"),
			Duration: timefmt.FormatDurationAligned(w.Duration(), 2),
			Project:  namer.DisplayName(w.Issue.Key),
			Issue:    w.Issue.Key,
			Comment:  w.Comment,
		})
	}
	return rows
}

// TotalSeconds sums the time of worklogs.
func TotalSeconds(worklogs []domain.Worklog) int64 {
	var total int64
	for _, w := range worklogs {
		total += w.Seconds
	}
	return total
}

func nameWidth(projects []ProjectStats) int {
	width := 0
	for _, p := range projects {
		if n := utf8.RuneCountInString(p.Name); n > width {
			width = n
		}
	}
	if width > maxNameWidth {
		width = maxNameWidth
	}
	if width < minNameWidth {
		width = minNameWidth
	}
	return width
}

func fitName(name string, width int) string {
	r := []rune(name)
	if len(r) > width {
		return string(r[:width-2]) + ".."
	}
	return padRight(name, width)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
