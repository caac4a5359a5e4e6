package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
	"github.com/workhours/internal/work"
)

// ErrNoRecords is returned when a month has nothing to archive.
var ErrNoRecords = errors.New("no records")

// Archiver writes monthly summaries to markdown files in historyPath.
type Archiver struct {
	historyPath string
	money       *timecalc.CurrencyFormatter
	now         func() time.Time
}

// New creates a new Archiver
func New(historyPath string, money *timecalc.CurrencyFormatter) *Archiver {
	return &Archiver{
		historyPath: historyPath,
		money:       money,
		now:         time.Now,
	}
}

// MonthSummary contains archived month data
type MonthSummary struct {
	Month  time.Time
	Stats  tracker.MonthStats
	Days   []tracker.DaySummary
	Weekly map[int]int // ISO week -> worked minutes
}

// Filename is the archive file name for month, e.g. "2024-01.md".
func Filename(month time.Time) string {
	return fmt.Sprintf("%d-%02d.md", month.Year(), month.Month())
}

// Summarize evaluates month against the store. Only recorded days are kept
// in Days.
func Summarize(month time.Time, store *tracker.Store, settings tracker.Settings) *MonthSummary {
	days := work.DaysInMonth(month.Year(), month.Month(), month.Location())
	summary := &MonthSummary{
		Month:  work.MonthStart(month),
		Stats:  tracker.MonthlyStats(days, store, settings),
		Weekly: make(map[int]int),
	}
	for _, d := range tracker.DayBreakdown(days, store, settings) {
		if !d.Recorded {
			continue
		}
		summary.Days = append(summary.Days, d)
		if d.Worked {
			_, week := d.Date.ISOWeek()
			summary.Weekly[week] += d.Minutes
		}
	}
	return summary
}

// ArchiveMonth writes the markdown summary of month and returns its path.
func (a *Archiver) ArchiveMonth(month time.Time, store *tracker.Store, settings tracker.Settings) (string, error) {
	summary := Summarize(month, store, settings)
	if len(summary.Days) == 0 {
		return "", fmt.Errorf("%s: %w", month.Format("January 2006"), ErrNoRecords)
	}

	if err := os.MkdirAll(a.historyPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}

	filePath := filepath.Join(a.historyPath, Filename(month))
	if err := os.WriteFile(filePath, []byte(a.generateMarkdown(summary)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}
	return filePath, nil
}

func (a *Archiver) generateMarkdown(summary *MonthSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", summary.Month.Format("January 2006"))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Hours | %s |\n", timecalc.FormatDuration(summary.Stats.TotalMinutes))
	fmt.Fprintf(&sb, "| Days Worked | %d |\n", summary.Stats.DaysWorked)
	fmt.Fprintf(&sb, "| Daily Average | %s |\n", timecalc.FormatDuration(summary.Stats.AverageMinutes))
	fmt.Fprintf(&sb, "| Earnings | %s |\n", a.money.Format(summary.Stats.TotalEarnings))
	sb.WriteString("\n")

	sb.WriteString("## Weekly Breakdown\n\n")
	sb.WriteString("| Week | Hours |\n")
	sb.WriteString("|------|-------|\n")

	weeks := make([]int, 0, len(summary.Weekly))
	for w := range summary.Weekly {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	for _, w := range weeks {
		fmt.Fprintf(&sb, "| W%d | %s |\n", w, timecalc.FormatDuration(summary.Weekly[w]))
	}
	sb.WriteString("\n")

	sb.WriteString("## Days\n\n")
	sb.WriteString("| Date | Start | End | Hours | Earnings | Note |\n")
	sb.WriteString("|------|-------|-----|-------|----------|------|\n")
	for _, d := range summary.Days {
		hours, pay, note := "-", "-", ""
		if d.Worked {
			hours = timecalc.FormatDuration(d.Minutes)
			pay = a.money.Format(d.Earnings)
		}
		switch {
		case d.Record.IsOff:
			note = "off"
		case !d.Worked:
			note = "incomplete"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			d.Key, orDash(d.Record.Start), orDash(d.Record.End), hours, pay, note)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "---\n*Archived: %s*\n", a.now().Format("2006-01-02 15:04"))
	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ArchivePastMonths archives every month before current that has records
// and no archive file yet.
func (a *Archiver) ArchivePastMonths(current time.Time, store *tracker.Store, settings tracker.Settings) ([]string, error) {
	keys := store.Keys()
	if len(keys) == 0 {
		return nil, nil
	}
	oldest, err := timecalc.ParseDateKey(keys[0], current.Location())
	if err != nil {
		return nil, err
	}

	currentMonth := work.MonthStart(current)
	var archived []string
	for month := work.MonthStart(oldest); month.Before(currentMonth); month = work.ShiftMonth(month, 1) {
		filename := Filename(month)
		if _, err := os.Stat(filepath.Join(a.historyPath, filename)); err == nil {
			continue
		}
		if _, err := a.ArchiveMonth(month, store, settings); err != nil {
			if errors.Is(err, ErrNoRecords) {
				continue
			}
			return archived, err
		}
		archived = append(archived, filename)
	}
	return archived, nil
}

// ListArchives returns list of archived months
func (a *Archiver) ListArchives() ([]string, error) {
	entries, err := os.ReadDir(a.historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var archives []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			archives = append(archives, e.Name())
		}
	}

	sort.Strings(archives)
	return archives, nil
}

// ReadArchive reads a specific month's archive
func (a *Archiver) ReadArchive(month time.Time) (string, error) {
	filename := Filename(month)
	data, err := os.ReadFile(filepath.Join(a.historyPath, filename))
	if err != nil {
		return "", fmt.Errorf("archive not found: %s", filename)
	}
	return string(data), nil
}
