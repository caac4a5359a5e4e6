package tracker

import (
	"math"
	"time"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/work"
)

// MonthStats summarises the worked days of a month.
type MonthStats struct {
	TotalMinutes   int
	TotalEarnings  float64
	AverageMinutes int
	DaysWorked     int
}

// WeekStats summarises the seven days of a week.
type WeekStats struct {
	TotalMinutes  int
	TotalEarnings float64
}

// DaySummary is one day as seen by the aggregation.
type DaySummary struct {
	Date     time.Time
	Key      string
	Record   DayRecord
	Recorded bool
	// Worked is true when the day contributes to totals.
	Worked   bool
	Minutes  int
	Earnings float64
}

// workedMinutes returns the duration a record contributes, and whether it
// contributes at all. Off days, incomplete records and non-positive spans
// contribute nothing.
func workedMinutes(rec DayRecord, ok bool) (int, bool) {
	if !ok || rec.IsOff || rec.Start == "" || rec.End == "" {
		return 0, false
	}
	d := timecalc.TimeToMinutes(rec.End) - timecalc.TimeToMinutes(rec.Start)
	if d <= 0 {
		return 0, false
	}
	return d, true
}

func earnings(minutes int, rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	return float64(minutes) / 60 * rate
}

// DayBreakdown evaluates each day against the store.
func DayBreakdown(days []time.Time, store *Store, settings Settings) []DaySummary {
	rate := settings.Rate()
	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		key := timecalc.DateKey(day)
		rec, ok := store.Get(key)
		minutes, worked := workedMinutes(rec, ok)
		out = append(out, DaySummary{
			Date:     day,
			Key:      key,
			Record:   rec,
			Recorded: ok,
			Worked:   worked,
			Minutes:  minutes,
			Earnings: earnings(minutes, rate),
		})
	}
	return out
}

// MonthlyStats folds the given days of a month into totals and the average
// length of a worked day.
func MonthlyStats(days []time.Time, store *Store, settings Settings) MonthStats {
	var stats MonthStats
	for _, d := range DayBreakdown(days, store, settings) {
		if !d.Worked {
			continue
		}
		stats.TotalMinutes += d.Minutes
		stats.TotalEarnings += d.Earnings
		stats.DaysWorked++
	}
	if stats.DaysWorked > 0 {
		stats.AverageMinutes = int(math.Round(float64(stats.TotalMinutes) / float64(stats.DaysWorked)))
	}
	return stats
}

// WeeklyStats applies the monthly rule to the Monday..Sunday week of selected.
func WeeklyStats(selected time.Time, store *Store, settings Settings) WeekStats {
	var stats WeekStats
	for _, d := range DayBreakdown(work.WeekDays(selected), store, settings) {
		if !d.Worked {
			continue
		}
		stats.TotalMinutes += d.Minutes
		stats.TotalEarnings += d.Earnings
	}
	return stats
}

// DayPreview is the live calculation for the edit buffer.
type DayPreview struct {
	Minutes  int
	Earnings float64
	IsOff    bool
}

// Preview computes what the buffer would contribute once saved. It returns
// nil while start or end is still missing.
func Preview(form FormState, settings Settings) *DayPreview {
	if form.IsOff {
		return &DayPreview{IsOff: true}
	}
	if form.Start == "" || form.End == "" {
		return nil
	}
	minutes := max(0, timecalc.TimeToMinutes(form.End)-timecalc.TimeToMinutes(form.Start))
	return &DayPreview{
		Minutes:  minutes,
		Earnings: float64(minutes) / 60 * settings.Rate(),
	}
}
