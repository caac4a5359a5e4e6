// Package export writes a month of day records as CSV, JSON or iCalendar.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
	"github.com/workhours/internal/work"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
)

const prodID = "-//workhours//workhours export//EN"

// emptyCalendar is written when a month has no events; the encoder rejects
// a calendar without components.
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + prodID + "\r\nEND:VCALENDAR\r\n"

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv, json or ics)", s)
	}
}

// Report is a month's recorded days and totals.
type Report struct {
	Month     time.Time
	Generated time.Time
	Days      []tracker.DaySummary
	Stats     tracker.MonthStats
}

// NewReport evaluates month against the store. Unrecorded days are left out.
func NewReport(month time.Time, store *tracker.Store, settings tracker.Settings, now time.Time) *Report {
	days := work.DaysInMonth(month.Year(), month.Month(), month.Location())
	r := &Report{
		Month:     work.MonthStart(month),
		Generated: now,
		Stats:     tracker.MonthlyStats(days, store, settings),
	}
	for _, d := range tracker.DayBreakdown(days, store, settings) {
		if d.Recorded {
			r.Days = append(r.Days, d)
		}
	}
	return r
}

// Write encodes r in the given format.
func Write(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatICS:
		return WriteICS(w, r)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

var csvHeader = []string{"date", "start", "end", "off", "custom", "minutes", "duration", "earnings"}

func WriteCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, d := range r.Days {
		duration := ""
		if d.Worked {
			duration = timecalc.FormatDuration(d.Minutes)
		}
		row := []string{
			d.Key,
			d.Record.Start,
			d.Record.End,
			strconv.FormatBool(d.Record.IsOff),
			strconv.FormatBool(d.Record.IsCustom),
			strconv.Itoa(d.Minutes),
			duration,
			strconv.FormatFloat(d.Earnings, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonDay struct {
	Date     string  `json:"date"`
	Start    string  `json:"start,omitempty"`
	End      string  `json:"end,omitempty"`
	IsOff    bool    `json:"isOff"`
	IsCustom bool    `json:"isCustom"`
	Minutes  int     `json:"minutes"`
	Earnings float64 `json:"earnings"`
}

type jsonReport struct {
	Month          string    `json:"month"`
	Generated      string    `json:"generated"`
	TotalMinutes   int       `json:"totalMinutes"`
	AverageMinutes int       `json:"averageMinutes"`
	DaysWorked     int       `json:"daysWorked"`
	TotalEarnings  float64   `json:"totalEarnings"`
	Days           []jsonDay `json:"days"`
}

func WriteJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		Month:          r.Month.Format("2006-01"),
		Generated:      r.Generated.Format(time.RFC3339),
		TotalMinutes:   r.Stats.TotalMinutes,
		AverageMinutes: r.Stats.AverageMinutes,
		DaysWorked:     r.Stats.DaysWorked,
		TotalEarnings:  r.Stats.TotalEarnings,
		Days:           make([]jsonDay, 0, len(r.Days)),
	}
	for _, d := range r.Days {
		out.Days = append(out.Days, jsonDay{
			Date:     d.Key,
			Start:    d.Record.Start,
			End:      d.Record.End,
			IsOff:    d.Record.IsOff,
			IsCustom: d.Record.IsCustom,
			Minutes:  d.Minutes,
			Earnings: d.Earnings,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteICS emits one event per worked day spanning start to end, and one
// all-day event per off day. Incomplete records are skipped.
func WriteICS(w io.Writer, r *Report) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(r.Generated.UTC())

	for _, d := range r.Days {
		var event *ical.Event
		switch {
		case d.Record.IsOff:
			event = offEvent(d)
		case d.Worked:
			event = workEvent(d)
		default:
			continue
		}
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s@workhours", d.Key))
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		_, err := io.WriteString(w, emptyCalendar)
		return err
	}
	return ical.NewEncoder(w).Encode(cal)
}

func workEvent(d tracker.DaySummary) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropSummary, "Work "+timecalc.FormatDuration(d.Minutes))
	event.Props.SetDateTime(ical.PropDateTimeStart, atClock(d.Date, d.Record.Start))
	event.Props.SetDateTime(ical.PropDateTimeEnd, atClock(d.Date, d.Record.End))
	return event
}

func offEvent(d tracker.DaySummary) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropSummary, "Off")
	start := ical.NewProp(ical.PropDateTimeStart)
	start.SetDate(d.Date)
	event.Props.Set(start)
	return event
}

// atClock returns the instant of clock on day in UTC. Zoned times would be
// written with a TZID naming the Go location, which has no VTIMEZONE.
func atClock(day time.Time, clock string) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, timecalc.TimeToMinutes(clock), 0, 0, day.Location()).UTC()
}
