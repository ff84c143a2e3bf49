package report

import (
	"testing"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/alexanderramin/lt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day domain.Date, hour int) time.Time {
	return domain.TimeOfDay{Hour: hour}.On(day, time.UTC)
}

func TestAggregate_GroupsByAliasAndDay(t *testing.T) {
	mon := domain.NewDate(2024, time.January, 1)
	tue := mon.AddDays(1)
	rng := domain.NewDateRange(mon, mon.AddDays(4))
	aliases := domain.Aliases{"opt": "TSI-1"}

	worklogs := []domain.Worklog{
		testutil.NewTestWorklog("TSI-1", at(mon, 9), 3*time.Hour, testutil.WithComment("sync")),
		testutil.NewTestWorklog("TSI-2", at(mon, 12), 5*time.Hour),
		testutil.NewTestWorklog("TSI-1", at(tue, 9), 2*time.Hour, testutil.WithComment("sync")),
		testutil.NewTestWorklog("TSI-1", at(tue, 11), time.Hour, testutil.WithComment("review")),
	}

	rep := Aggregate(rng, worklogs, aliases)
	require.Len(t, rep.Projects, 2)
	assert.Equal(t, int64(11*3600), rep.Seconds)

	opt := rep.Projects[0]
	assert.Equal(t, "opt", opt.Name)
	assert.Equal(t, int64(6*3600), opt.Seconds)
	assert.Len(t, opt.Worklogs, 3)
	assert.Equal(t, int64(3*3600), opt.Days[tue].Seconds)
	assert.Equal(t, []string{"sync", "review"}, opt.Days[tue].Comments)
	assert.Equal(t, []domain.Date{mon, tue}, opt.SortedDays())

	assert.Equal(t, "TSI-2", rep.Projects[1].Name)
}

func TestAggregate_TiesKeepDiscoveryOrder(t *testing.T) {
	mon := domain.NewDate(2024, time.January, 1)
	rng := domain.NewDateRange(mon, mon)
	worklogs := []domain.Worklog{
		testutil.NewTestWorklog("B-1", at(mon, 9), time.Hour),
		testutil.NewTestWorklog("A-1", at(mon, 10), time.Hour),
		testutil.NewTestWorklog("C-1", at(mon, 11), 2*time.Hour),
	}
	rep := Aggregate(rng, worklogs, domain.Aliases{})
	names := []string{rep.Projects[0].Name, rep.Projects[1].Name, rep.Projects[2].Name}
	assert.Equal(t, []string{"C-1", "B-1", "A-1"}, names)
}

func TestBuildStatsView_SparklineAndAxis(t *testing.T) {
	from := domain.NewDate(2024, time.January, 1)
	rng := domain.NewDateRange(from, from.AddDays(29))
	worklogs := []domain.Worklog{
		testutil.NewTestWorklog("TSI-1", at(from, 9), 8*time.Hour),
		testutil.NewTestWorklog("TSI-1", at(from.AddDays(1), 9), 4*time.Hour),
	}
	view := BuildStatsView(Aggregate(rng, worklogs, domain.Aliases{}), StatsOptions{Sparkline: true})

	require.Len(t, view.Rows, 1)
	assert.Equal(t, domain.BucketMonthly, view.Bucket)
	assert.Equal(t, "1d 4h", view.Rows[0].Duration)
	assert.Equal(t, "TSI-1", view.Rows[0].Name)
	assert.Equal(t, len(rng.Workdays()), len([]rune(view.Rows[0].Sparkline)))
	assert.Contains(t, view.Axis, "W1")
	assert.Equal(t, "Total", view.TotalLabel)
	assert.Equal(t, "1d 4h", view.Total)
}

func TestBuildStatsView_NoAxisForWeeklyOrWithoutSparkline(t *testing.T) {
	mon := domain.NewDate(2024, time.January, 1)
	worklogs := []domain.Worklog{testutil.NewTestWorklog("TSI-1", at(mon, 9), 8*time.Hour)}

	weekly := BuildStatsView(Aggregate(domain.NewDateRange(mon, mon.AddDays(4)), worklogs, domain.Aliases{}), StatsOptions{Sparkline: true})
	assert.Empty(t, weekly.Axis)
	assert.NotEmpty(t, weekly.Rows[0].Sparkline)

	monthly := BuildStatsView(Aggregate(domain.NewDateRange(mon, mon.AddDays(29)), worklogs, domain.Aliases{}), StatsOptions{})
	assert.Empty(t, monthly.Axis)
	assert.Empty(t, monthly.Rows[0].Sparkline)
}

func TestBuildStatsView_TruncatesLongNamesAndDrillsDown(t *testing.T) {
	mon := domain.NewDate(2024, time.January, 1)
	long := "a-very-long-alias-name-for-a-project"
	aliases := domain.Aliases{long: "TSI-1"}
	worklogs := []domain.Worklog{
		testutil.NewTestWorklog("TSI-1", at(mon, 9), 90*time.Minute, testutil.WithComment("planning")),
		testutil.NewTestWorklog("TSI-2", at(mon, 11), time.Hour),
	}
	view := BuildStatsView(Aggregate(domain.NewDateRange(mon, mon), worklogs, aliases), StatsOptions{Verbose: 1})

	assert.Equal(t, "a-very-long-alias-..", view.Rows[0].Name)
	assert.Equal(t, "TSI-2               ", view.Rows[1].Name)
	require.Len(t, view.Rows[0].Details, 1)
	assert.Equal(t, DayDetail{Day: "01.01", Duration: " 1h 30m", Comments: "planning"}, view.Rows[0].Details[0])
}

func TestBuildListRows_DateOnFirstOfDay(t *testing.T) {
	mon := domain.NewDate(2024, time.January, 1)
	worklogs := []domain.Worklog{
		testutil.NewTestWorklog("TSI-1", at(mon, 9), time.Hour),
		testutil.NewTestWorklog("TSI-2", at(mon, 10), time.Hour, testutil.WithComment("c")),
		testutil.NewTestWorklog("TSI-1", at(mon.AddDays(1), 9), 30*time.Minute),
	}
	rows := BuildListRows(worklogs, domain.Aliases{"opt": "TSI-1"})
	require.Len(t, rows, 3)
	assert.Equal(t, "01.01", rows[0].Date)
	assert.Equal(t, "", rows[1].Date)
	assert.Equal(t, "02.01", rows[2].Date)
	assert.Equal(t, "opt", rows[0].Project)
	assert.Equal(t, "TSI-2", rows[1].Project)
	assert.Equal(t, "10:00", rows[1].Time)
	assert.Equal(t, " 0h 30m", rows[2].Duration)
	assert.Equal(t, int64(9000), TotalSeconds(worklogs))
}
