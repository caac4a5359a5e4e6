package work

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"January", 2024, time.January, 31},
		{"February leap", 2024, time.February, 29},
		{"February", 2023, time.February, 28},
		{"February century", 1900, time.February, 28},
		{"February 400", 2000, time.February, 29},
		{"April", 2024, time.April, 30},
		{"December", 2024, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysInMonth(tt.year, tt.month, time.UTC)
			require.Len(t, days, tt.want)

			seen := map[string]bool{}
			for i, d := range days {
				key := d.Format("2006-01-02")
				assert.False(t, seen[key], "duplicate day %s", key)
				seen[key] = true
				assert.Equal(t, i+1, d.Day())
				assert.Equal(t, tt.month, d.Month())
				if i > 0 {
					assert.True(t, d.After(days[i-1]), "days must ascend")
				}
			}
		})
	}
}

func TestDaysInMonthAllMonths(t *testing.T) {
	for year := 2020; year <= 2028; year++ {
		for m := time.January; m <= time.December; m++ {
			days := DaysInMonth(year, m, time.UTC)
			// The day after the last day is the first of the next month.
			last := days[len(days)-1]
			assert.Equal(t, 1, last.AddDate(0, 0, 1).Day())
		}
	}
}

func TestWeekRange(t *testing.T) {
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) // Monday Jan 1, 2024

	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		t.Run(day.Weekday().String(), func(t *testing.T) {
			start, end := WeekRange(day)
			assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), end)
		})
	}
}

func TestWeekRangeSundayEndsItsWeek(t *testing.T) {
	sundays := []time.Time{
		time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC),
	}
	for _, s := range sundays {
		start, end := WeekRange(s)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, s.Format("2006-01-02"), end.Format("2006-01-02"))
		assert.Equal(t, 6*24*time.Hour, end.Sub(start))
	}
}

func TestWeekDaysCrossesMonthBoundary(t *testing.T) {
	days := WeekDays(time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)) // Friday
	require.Len(t, days, DaysPerWeek)
	assert.Equal(t, "2026-02-23", days[0].Format("2006-01-02"))
	assert.Equal(t, "2026-03-01", days[6].Format("2006-01-02"))
}

func TestIsHoliday(t *testing.T) {
	saturday := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	sunday := saturday.AddDate(0, 0, 1)
	monday := saturday.AddDate(0, 0, 2)
	weekend := []int{0, 6}

	assert.True(t, IsHoliday(saturday, weekend))
	assert.True(t, IsHoliday(sunday, weekend))
	assert.False(t, IsHoliday(monday, weekend))
	assert.False(t, IsHoliday(sunday, nil))
}

func TestIsWorkDay(t *testing.T) {
	monday := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, IsWorkDay(monday))
	assert.True(t, IsWorkDay(monday.AddDate(0, 0, 4)))
	assert.False(t, IsWorkDay(monday.AddDate(0, 0, 5)))
	assert.False(t, IsWorkDay(monday.AddDate(0, 0, 6)))
}

func TestShiftMonth(t *testing.T) {
	jan31 := time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ShiftMonth(jan31, 1))
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), ShiftMonth(jan31, -1))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), MonthStart(jan31))
}

func TestSelectionForMonth(t *testing.T) {
	today := time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
		SelectionForMonth(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		SelectionForMonth(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), today))
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		SelectionForMonth(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), today))
}
