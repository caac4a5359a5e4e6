package tracker

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/work"
)

// ValidateSettings checks settings before they are committed.
func ValidateSettings(s Settings) error {
	for _, t := range []string{s.DefaultStartTime, s.DefaultEndTime} {
		if t == "" {
			continue
		}
		if _, err := timecalc.ParseClock(t); err != nil {
			return &ValidationError{Field: FieldDefaultTime, Message: err.Error()}
		}
	}
	if rate := strings.TrimSpace(s.HourlyRate); rate != "" {
		r, err := strconv.ParseFloat(rate, 64)
		if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
			return &ValidationError{Field: FieldHourlyRate, Message: "hourly rate must be a number"}
		}
		if r < 0 {
			return &ValidationError{Field: FieldHourlyRate, Message: "hourly rate must not be negative"}
		}
	}
	seen := make(map[int]bool, len(s.HolidayDays))
	for _, d := range s.HolidayDays {
		if d < 0 || d > 6 {
			return &ValidationError{Field: FieldHolidayDays, Message: "weekday must be 0 (Sunday) to 6 (Saturday)"}
		}
		if seen[d] {
			return &ValidationError{Field: FieldHolidayDays, Message: "weekday listed twice"}
		}
		seen[d] = true
	}
	return nil
}

// ApplySettings rewrites the non-custom records of days to match settings.
//
// The holiday pass marks every non-custom record on a holiday weekday as off.
// The default-hours pass then sets the default times on every non-custom
// record that is not off, and creates a default record for every unrecorded
// day that is not a holiday. No records are created when both default times
// are empty. Custom records are never touched, and nothing here ever sets
// IsCustom.
func ApplySettings(days []time.Time, store *Store, settings Settings) {
	for _, day := range days {
		if !work.IsHoliday(day, settings.HolidayDays) {
			continue
		}
		key := timecalc.DateKey(day)
		if rec, ok := store.Get(key); ok && rec.IsCustom {
			continue
		}
		store.Set(key, DayRecord{IsOff: true, IsCustom: false})
	}

	create := settings.DefaultStartTime != "" || settings.DefaultEndTime != ""
	for _, day := range days {
		key := timecalc.DateKey(day)
		rec, ok := store.Get(key)
		switch {
		case ok && !rec.IsCustom && !rec.IsOff:
			rec.Start = settings.DefaultStartTime
			rec.End = settings.DefaultEndTime
			store.Set(key, rec)
		case !ok && create && !work.IsHoliday(day, settings.HolidayDays):
			store.Set(key, DayRecord{
				Start:    settings.DefaultStartTime,
				End:      settings.DefaultEndTime,
				IsOff:    false,
				IsCustom: false,
			})
		}
	}
}
