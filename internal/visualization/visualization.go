package visualization

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
	"github.com/workhours/internal/work"
)

const (
	colorWorked   = "#4CAF50"
	colorLong     = "#FF9800"
	colorOff      = "#B0BEC5"
	colorLabel    = "#7f8c8d"
	colorWeekend  = "#C0392B"
	maxDayMinutes = 12 * 60
	longDay       = 10 * 60
)

type Visualizer struct{}

func New() *Visualizer {
	return &Visualizer{}
}

// GenerateWeekSVG draws one bar per day of the week. goalMinutes is the
// default working day and is drawn as a dashed line; zero hides it.
func (v *Visualizer) GenerateWeekSVG(days []tracker.DaySummary, stats tracker.WeekStats, goalMinutes int) string {
	width := 600
	height := 300
	padding := 40
	chartHeight := float64(height - 2*padding)
	barWidth := float64((width - 2*padding) / work.DaysPerWeek)

	var bars, labels strings.Builder
	for i, d := range days {
		minutes := min(d.Minutes, maxDayMinutes)
		barHeight := float64(minutes) / maxDayMinutes * chartHeight

		x := float64(padding) + float64(i)*barWidth + 5
		y := float64(height) - float64(padding) - barHeight

		color := colorWorked
		text := timecalc.FormatDuration(d.Minutes)
		switch {
		case d.Record.IsOff:
			color = colorOff
			barHeight = 4
			y = float64(height) - float64(padding) - barHeight
			text = "off"
		case !d.Worked:
			text = ""
		case d.Minutes > longDay:
			color = colorLong
		}

		fmt.Fprintf(&bars, `<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="%s" rx="4"/>
    <text x="%.0f" y="%d" text-anchor="middle" font-size="12" fill="#333">%s</text>`,
			x, y, barWidth-10, barHeight, color,
			x+barWidth/2-5, int(y)-5, text)

		labelColor := colorLabel
		if !work.IsWorkDay(d.Date) {
			labelColor = colorWeekend
		}
		fmt.Fprintf(&labels, `<text x="%.0f" y="%d" text-anchor="middle" font-size="12" fill="%s">%s</text>`,
			x+barWidth/2-5, height-padding+20, labelColor, d.Date.Format("Mon"))
	}

	var goal string
	if goalMinutes > 0 {
		gy := float64(height) - float64(padding) - float64(min(goalMinutes, maxDayMinutes))/maxDayMinutes*chartHeight
		goal = fmt.Sprintf(`<line x1="%d" y1="%.0f" x2="%d" y2="%.0f" stroke="#E74C3C" stroke-width="2" stroke-dasharray="5,5"/>
  <text x="%d" y="%.0f" font-size="10" fill="#E74C3C">Default day</text>`,
			padding, gy, width-padding, gy, width-padding-60, gy-5)
	}

	var subtitle string
	if len(days) > 0 {
		subtitle = fmt.Sprintf("%s - %s | Total: %s",
			days[0].Date.Format("Jan 2"), days[len(days)-1].Date.Format("Jan 2"),
			timecalc.FormatDuration(stats.TotalMinutes))
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">
  <defs>
    <linearGradient id="bgGrad" x1="0%%" y1="0%%" x2="0%%" y2="100%%">
      <stop offset="0%%" style="stop-color:#f5f7fa"/>
      <stop offset="100%%" style="stop-color:#e4e8ec"/>
    </linearGradient>
  </defs>
  <rect width="%d" height="%d" fill="url(#bgGrad)" rx="10"/>
  <text x="%d" y="30" text-anchor="middle" font-size="18" font-weight="bold" fill="#2c3e50">Weekly Overview</text>
  <text x="%d" y="55" text-anchor="middle" font-size="12" fill="#7f8c8d">%s</text>

  %s

  <!-- Bars -->
  %s

  <!-- X-axis labels -->
  %s

  <!-- Grid lines -->
  %s
</svg>`,
		width, height, width, height,
		width, height,
		width/2,
		width/2, subtitle,
		goal,
		bars.String(),
		labels.String(),
		v.generateGridLines(height, padding, width),
	)
}

// GenerateMonthSVG draws worked time per ISO week of the month.
func (v *Visualizer) GenerateMonthSVG(month time.Time, days []tracker.DaySummary, stats tracker.MonthStats) string {
	width := 600
	height := 400
	padding := 50

	weekly := make(map[int]int)
	for _, d := range days {
		_, w := d.Date.ISOWeek()
		weekly[w] += d.Minutes
	}
	weeks := make([]int, 0, len(weekly))
	for w := range weekly {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	peak := 1
	for _, m := range weekly {
		peak = max(peak, m)
	}

	cellSize := float64(width-2*padding) / float64(max(len(weeks), 1))
	var bars strings.Builder
	for i, w := range weeks {
		m := weekly[w]
		barHeight := float64(m) / float64(peak) * float64(height-2*padding-40)
		x := float64(padding) + float64(i)*cellSize + 10
		y := float64(height) - float64(padding) - barHeight

		fmt.Fprintf(&bars, `<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="#3498DB" rx="4"/>
    <text x="%.0f" y="%d" text-anchor="middle" font-size="12" fill="#333">%s</text>
    <text x="%.0f" y="%d" text-anchor="middle" font-size="12" fill="#7f8c8d">W%d</text>`,
			x, y, cellSize-20, barHeight,
			x+cellSize/2-10, int(y)-5, timecalc.FormatDuration(m),
			x+cellSize/2-10, height-padding+20, w)
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">
  <rect width="%d" height="%d" fill="#f5f7fa" rx="10"/>
  <text x="%d" y="30" text-anchor="middle" font-size="18" font-weight="bold" fill="#2c3e50">Monthly Overview</text>
  <text x="%d" y="55" text-anchor="middle" font-size="12" fill="#7f8c8d">%s | Total: %s | Daily Avg: %s | Days: %d</text>

  <!-- Bars -->
  %s
</svg>`,
		width, height, width, height,
		width, height,
		width/2,
		width/2, month.Format("January 2006"),
		timecalc.FormatDuration(stats.TotalMinutes),
		timecalc.FormatDuration(stats.AverageMinutes),
		stats.DaysWorked,
		bars.String(),
	)
}

func (v *Visualizer) generateGridLines(height int, padding int, width int) string {
	var lines strings.Builder
	for i := 1; i <= 4; i++ {
		y := float64(height) - float64(padding) - (float64(i)/4.0)*float64(height-2*padding)
		fmt.Fprintf(&lines, `<line x1="%d" y1="%.0f" x2="%d" y2="%.0f" stroke="#E0E0E0"/>`,
			padding, y, width-padding, y)
	}
	return lines.String()
}
