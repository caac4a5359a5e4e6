package timecalc

import (
	"fmt"
	"time"
)

// DateKeyLayout is the canonical layout of a day key.
const DateKeyLayout = "2006-01-02"

// ParseClock parses a wall-clock "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q (use HH:MM)", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// TimeToMinutes is the lenient form of ParseClock: empty or malformed input
// counts as zero minutes.
func TimeToMinutes(s string) int {
	if s == "" {
		return 0
	}
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// FormatClock formats minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDuration formats a minute count as "8h 30m". Zero renders as "0h 0m";
// callers showing an unrecorded day print their own placeholder instead.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// DateKey returns the YYYY-MM-DD key of t's local calendar date.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", key, err)
	}
	return t, nil
}

// StartOfDay returns 00:00 of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
