package main

import (
	"fmt"
	"io"
	"time"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
)

func printDay(w io.Writer, a *tracker.App, money *timecalc.CurrencyFormatter) {
	form := a.Form()
	var detail string
	switch p := a.Preview(); {
	case p == nil:
		detail = fmt.Sprintf("%s - %s | Duration: -", orDash(form.Start), orDash(form.End))
	case p.IsOff:
		detail = "Off"
	default:
		detail = fmt.Sprintf("%s - %s | Duration: %s | Earnings: %s",
			form.Start, form.End, timecalc.FormatDuration(p.Minutes), money.Format(p.Earnings))
	}
	var origin string
	if _, ok := a.Store().Get(a.SelectedKey()); !ok {
		origin = " | not recorded"
	} else if form.IsCustom {
		origin = " | edited"
	}
	fmt.Fprintf(w, "Day: %s | %s%s\n", a.Selected().Format("Monday, Jan 2 2006"), detail, origin)
}

func printWeek(w io.Writer, a *tracker.App, money *timecalc.CurrencyFormatter, today time.Time) {
	days := a.WeekBreakdown()
	stats := a.WeeklyStats()
	fmt.Fprintf(w, "Week: %s - %s | Total: %s | Earnings: %s\n",
		days[0].Date.Format("Jan 2"), days[len(days)-1].Date.Format("Jan 2"),
		timecalc.FormatDuration(stats.TotalMinutes), money.Format(stats.TotalEarnings))
	for _, d := range days {
		fmt.Fprintln(w, dayLine(d, money, today))
	}
}

func printMonth(w io.Writer, a *tracker.App, money *timecalc.CurrencyFormatter, today time.Time) {
	stats := a.MonthlyStats()
	fmt.Fprintf(w, "Month: %s | Total: %s | Days worked: %d | Daily avg: %s | Earnings: %s\n",
		a.Month().Format("January 2006"),
		timecalc.FormatDuration(stats.TotalMinutes),
		stats.DaysWorked,
		timecalc.FormatDuration(stats.AverageMinutes),
		money.Format(stats.TotalEarnings))
	for _, d := range a.Breakdown() {
		fmt.Fprintln(w, dayLine(d, money, today))
	}
}

// dayLine renders one day; unrecorded and incomplete days show "-" for
// their duration. Today is marked with "*".
func dayLine(d tracker.DaySummary, money *timecalc.CurrencyFormatter, today time.Time) string {
	span, duration, pay := "-", "-", "-"
	switch {
	case d.Record.IsOff:
		span = "off"
	case d.Recorded:
		span = fmt.Sprintf("%s-%s", orDash(d.Record.Start), orDash(d.Record.End))
	}
	if d.Worked {
		duration = timecalc.FormatDuration(d.Minutes)
		pay = money.Format(d.Earnings)
	}
	line := fmt.Sprintf("  %s %s  %-11s  %-7s  %s", d.Date.Format("01/02"), d.Date.Format("Mon"), span, duration, pay)
	if timecalc.SameDay(d.Date, today) {
		line += " *"
	}
	return line
}

func printSettings(w io.Writer, a *tracker.App, money *timecalc.CurrencyFormatter) {
	s := a.Settings()
	rate := "-"
	if s.HourlyRate != "" {
		rate = money.Format(s.Rate())
	}
	theme := "light"
	if a.DarkMode() {
		theme = "dark"
	}
	fmt.Fprintf(w, "Settings: Default hours: %s - %s | Hourly rate: %s | Holidays: %s | Theme: %s\n",
		orDash(s.DefaultStartTime), orDash(s.DefaultEndTime), rate, formatHolidays(s.HolidayDays), theme)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
