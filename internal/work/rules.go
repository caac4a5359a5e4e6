package work

import "time"

// =============================================================================
// CALENDAR RULES
// =============================================================================
// Two weekday conventions live here and are deliberately kept apart:
//
//   - Holiday days use time.Weekday numbering: 0=Sunday .. 6=Saturday.
//   - Weeks run Monday..Sunday; a Sunday closes the week that began on the
//     previous Monday.
// =============================================================================

const (
	// DaysPerWeek is the length of a WeekRange window.
	DaysPerWeek = 7
)

// DaysInMonth returns local midnight of every day in the month, ascending.
func DaysInMonth(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekRange returns local midnight of the Monday and the Sunday of the week
// containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday ends the week
	}
	monday := time.Date(t.Year(), t.Month(), t.Day()-(wd-1), 0, 0, 0, 0, t.Location())
	sunday := time.Date(monday.Year(), monday.Month(), monday.Day()+6, 0, 0, 0, 0, t.Location())
	return monday, sunday
}

// WeekDays returns the seven days of WeekRange(t).
func WeekDays(t time.Time) []time.Time {
	monday, _ := WeekRange(t)
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = time.Date(monday.Year(), monday.Month(), monday.Day()+i, 0, 0, 0, 0, monday.Location())
	}
	return days
}

// IsHoliday reports whether t's weekday is one of holidayDays (0=Sunday).
func IsHoliday(t time.Time, holidayDays []int) bool {
	wd := int(t.Weekday())
	for _, d := range holidayDays {
		if d == wd {
			return true
		}
	}
	return false
}

// IsWorkDay returns true if the given day is a standard work day (Mon-Fri)
func IsWorkDay(t time.Time) bool {
	day := t.Weekday()
	return day >= time.Monday && day <= time.Friday
}

// MonthStart returns local midnight of the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ShiftMonth moves offset months from t and returns the first of that month.
func ShiftMonth(t time.Time, offset int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, t.Location())
}

// SelectionForMonth picks the day to select after navigating to month:
// today when the month contains today, otherwise the first of the month.
func SelectionForMonth(month, today time.Time) time.Time {
	if month.Year() == today.Year() && month.Month() == today.Month() {
		return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	}
	return MonthStart(month)
}
