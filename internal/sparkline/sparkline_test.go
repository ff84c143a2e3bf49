package sparkline

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/stretchr/testify/assert"
)

func hours(h float64) domain.DailyBucket {
	return domain.DailyBucket{Seconds: int64(h * 3600)}
}

func TestRender_OneGlyphPerWorkday(t *testing.T) {
	// Monday to Wednesday.
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 3))
	daily := map[domain.Date]domain.DailyBucket{
		domain.NewDate(2024, time.January, 1): hours(8),
		domain.NewDate(2024, time.January, 2): hours(6),
		domain.NewDate(2024, time.January, 3): hours(4),
	}

	line := Render(daily, r, DefaultOptions)
	assert.Equal(t, 3, utf8.RuneCountInString(line))
	assert.Equal(t, "█▇▅", line)
}

func TestRender_WeekendsAreDropped(t *testing.T) {
	// Friday to Tuesday: 3 workdays, weekend hours are ignored.
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 5), domain.NewDate(2024, time.January, 9))
	daily := map[domain.Date]domain.DailyBucket{
		domain.NewDate(2024, time.January, 5): hours(8),
		domain.NewDate(2024, time.January, 6): hours(8),
		domain.NewDate(2024, time.January, 9): hours(2),
	}

	line := Render(daily, r, DefaultOptions)
	assert.Equal(t, 3, utf8.RuneCountInString(line))
	assert.Equal(t, "█ ▃", line)
}

func TestRender_NothingToShow(t *testing.T) {
	week := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 5))
	assert.Equal(t, "", Render(nil, week, DefaultOptions))
	assert.Equal(t, "", Render(map[domain.Date]domain.DailyBucket{
		domain.NewDate(2024, time.January, 2): {},
	}, week, DefaultOptions))

	weekend := domain.NewDateRange(domain.NewDate(2024, time.January, 6), domain.NewDate(2024, time.January, 7))
	assert.Equal(t, "", Render(map[domain.Date]domain.DailyBucket{
		domain.NewDate(2024, time.January, 6): hours(3),
	}, weekend, DefaultOptions))
}

func TestRender_ClampsAboveMaximum(t *testing.T) {
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 2))
	daily := map[domain.Date]domain.DailyBucket{
		domain.NewDate(2024, time.January, 1): hours(10),
		domain.NewDate(2024, time.January, 2): hours(0.25),
	}
	assert.Equal(t, "█▁", Render(daily, r, DefaultOptions))
}

func TestRender_ObservedMaximumWithoutBounds(t *testing.T) {
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 2))
	daily := map[domain.Date]domain.DailyBucket{
		domain.NewDate(2024, time.January, 1): hours(2),
		domain.NewDate(2024, time.January, 2): hours(1),
	}
	assert.Equal(t, "█▅", Render(daily, r, Options{}))
}

func TestAxisLabels_WeeklyIsEmpty(t *testing.T) {
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 31))
	assert.Equal(t, "", AxisLabels(r, domain.BucketWeekly))
}

func TestAxisLabels_MonthlyWeekMarkers(t *testing.T) {
	to := domain.NewDate(2024, time.March, 28)
	r := domain.NewDateRange(to.AddDays(-29), to)

	labels := AxisLabels(r, domain.BucketMonthly)
	assert.Contains(t, labels, "W1")
	assert.Contains(t, labels, "W2")
	assert.LessOrEqual(t, utf8.RuneCountInString(labels), len(r.Workdays()))
}

func TestAxisLabels_MonthlyPositions(t *testing.T) {
	// Monday 2024-01-01 to Friday 2024-01-12: two full weeks.
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.January, 12))
	assert.Equal(t, "W1   W2", AxisLabels(r, domain.BucketMonthly))
}

func TestAxisLabels_SkipsOverlappingLabels(t *testing.T) {
	// Friday starts week 1, Monday starts week 2 one position later.
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 5), domain.NewDate(2024, time.January, 19))
	labels := AxisLabels(r, domain.BucketMonthly)
	assert.True(t, strings.HasPrefix(labels, "W1"))
	assert.NotContains(t, labels, "W2")
	assert.Contains(t, labels, "W3")
}

func TestAxisLabels_LabelsFitWithinWorkdays(t *testing.T) {
	monday := domain.NewDate(2024, time.January, 1)
	r := domain.NewDateRange(monday, monday.AddDays(4))
	labels := AxisLabels(r, domain.BucketMonthly)
	assert.LessOrEqual(t, len(strings.TrimRight(labels, " ")), 5)
}

func TestAxisLabels_YearlyMonthNames(t *testing.T) {
	r := domain.NewDateRange(domain.NewDate(2024, time.January, 1), domain.NewDate(2024, time.June, 30))
	labels := AxisLabels(r, domain.BucketYearly)
	for _, m := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"} {
		assert.Contains(t, labels, m)
	}
	assert.True(t, strings.HasPrefix(labels, "Jan"))
	assert.LessOrEqual(t, utf8.RuneCountInString(labels), len(r.Workdays()))
}

func TestAxisLabels_WeekendOnlyRange(t *testing.T) {
	saturday := domain.NewDate(2024, time.January, 6)
	r := domain.NewDateRange(saturday, saturday.AddDays(1))
	assert.Equal(t, "", AxisLabels(r, domain.BucketMonthly))
	assert.Equal(t, "", AxisLabels(r, domain.BucketYearly))
}
