package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/workhours/internal/timecalc"
)

const monthArgLayout = "2006-01"

// parseDay accepts YYYY-MM-DD, "today", "yesterday" and "tomorrow", relative
// to now and in now's location.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := timecalc.StartOfDay(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	t, err := timecalc.ParseDateKey(strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// parseMonth accepts YYYY-MM and returns the first of that month.
func parseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(monthArgLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (use YYYY-MM, e.g. 2025-01)", s)
	}
	return t, nil
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// parseHolidays reads a comma separated list of weekdays, by name or by
// number (0=Sunday). An empty string clears the list.
func parseHolidays(s string) ([]int, error) {
	days := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, ok := weekdayNames[part]
		if !ok {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("invalid weekday %q (use sun..sat or 0..6)", part)
			}
			d = n
		}
		if !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	slices.Sort(days)
	return days, nil
}

func formatHolidays(days []int) string {
	if len(days) == 0 {
		return "none"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = time.Weekday(d).String()[:3]
	}
	return strings.Join(names, ",")
}
