package daterange

import (
	"testing"
	"time"

	"github.com/alexanderramin/lt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NamesAndAbbreviations(t *testing.T) {
	r := DefaultResolver()
	tests := map[string]Name{
		"week":       Week,
		"W":          Week,
		"lw":         LastWeek,
		"Last-Month": LastMonth,
		"y":          Year,
		"yd":         Yesterday,
		"d":          Today,
		"ly":         LastYear,
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := r.Resolve(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := DefaultResolver().Resolve("fortnight")
	var rerr *domain.UnknownRangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "fortnight", rerr.Input)
	assert.Contains(t, err.Error(), "last-week")
}

func TestNewResolver_CustomAbbreviations(t *testing.T) {
	r, err := NewResolver(map[string]string{"q": "last-month", "TW": "week"})
	require.NoError(t, err)

	name, err := r.Resolve("tw")
	require.NoError(t, err)
	assert.Equal(t, Week, name)
	assert.Contains(t, r.Abbreviations(LastMonth), "q")
}

func TestNewResolver_RejectsCollisions(t *testing.T) {
	_, err := NewResolver(map[string]string{"y": "yesterday"})
	assert.Error(t, err)

	_, err = NewResolver(map[string]string{"q": "quarter"})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	today := domain.NewDate(2024, time.March, 13)
	tests := []struct {
		name     Name
		from, to domain.Date
	}{
		{Today, today, today},
		{Yesterday, domain.NewDate(2024, 3, 12), domain.NewDate(2024, 3, 12)},
		{Week, domain.NewDate(2024, 3, 11), today},
		{LastWeek, domain.NewDate(2024, 3, 4), domain.NewDate(2024, 3, 10)},
		{Month, domain.NewDate(2024, 3, 1), today},
		{LastMonth, domain.NewDate(2024, 2, 1), domain.NewDate(2024, 2, 29)},
		{Year, domain.NewDate(2024, 1, 1), today},
		{LastYear, domain.NewDate(2023, 1, 1), domain.NewDate(2023, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := Parse(tt.name, today)
			require.NoError(t, err)
			assert.Equal(t, tt.from, got.From)
			assert.Equal(t, tt.to, got.To)
		})
	}
}

func TestParse_LastMonthInJanuary(t *testing.T) {
	got, err := Parse(LastMonth, domain.NewDate(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2023, time.December, 1), got.From)
	assert.Equal(t, domain.NewDate(2023, time.December, 31), got.To)
}

func TestParse_WeekOnSundayAndMonday(t *testing.T) {
	sunday := domain.NewDate(2024, time.March, 17)
	got, err := Parse(Week, sunday)
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.March, 11), got.From)

	monday := domain.NewDate(2024, time.March, 18)
	got, err = Parse(LastWeek, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.March, 11), got.From)
	assert.Equal(t, sunday, got.To)
}

func TestClassify_Boundaries(t *testing.T) {
	to := domain.NewDate(2024, time.June, 30)
	tests := []struct {
		delta int
		want  domain.RangeBucket
	}{
		{0, domain.BucketWeekly},
		{6, domain.BucketWeekly},
		{13, domain.BucketWeekly},
		{14, domain.BucketMonthly},
		{29, domain.BucketMonthly},
		{59, domain.BucketMonthly},
		{60, domain.BucketYearly},
		{364, domain.BucketYearly},
	}
	for _, tt := range tests {
		from := to.AddDays(-tt.delta)
		assert.Equal(t, tt.want, Classify(from, to), "delta %d", tt.delta)
	}
}
