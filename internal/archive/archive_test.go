package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/tracker"
)

func newTestArchiver(t *testing.T) (*Archiver, string) {
	t.Helper()
	money, err := timecalc.NewCurrencyFormatter("en-US", "USD")
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "history")
	a := New(dir, money)
	a.now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }
	return a, dir
}

func januaryStore() *tracker.Store {
	return tracker.StoreFrom(map[string]tracker.DayRecord{
		"2024-01-02": {Start: "08:00", End: "17:00"},
		"2024-01-03": {IsOff: true, IsCustom: true},
		"2024-01-04": {Start: "08:00", IsCustom: true},
		"2024-02-05": {Start: "08:00", End: "12:00"},
	})
}

func ratedSettings() tracker.Settings {
	s := tracker.DefaultSettings()
	s.HourlyRate = "10"
	return s
}

var january = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSummarize(t *testing.T) {
	summary := Summarize(january, januaryStore(), ratedSettings())

	assert.Equal(t, 540, summary.Stats.TotalMinutes)
	assert.Equal(t, 1, summary.Stats.DaysWorked)
	assert.InDelta(t, 90.0, summary.Stats.TotalEarnings, 1e-9)
	assert.Len(t, summary.Days, 3, "only recorded days of the month")
	assert.Equal(t, map[int]int{1: 540}, summary.Weekly)
}

func TestArchiveMonth(t *testing.T) {
	a, dir := newTestArchiver(t)

	path, err := a.ArchiveMonth(january, januaryStore(), ratedSettings())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-01.md"), path)

	content, err := a.ReadArchive(january)
	require.NoError(t, err)

	for _, want := range []string{
		"# January 2024",
		"| Total Hours | 9h 0m |",
		"| Days Worked | 1 |",
		"| W1 | 9h 0m |",
		"| 2024-01-03 | - | - | - | - | off |",
		"| 2024-01-04 | 08:00 | - | - | - | incomplete |",
		"*Archived: 2024-02-01 09:00*",
	} {
		assert.Contains(t, content, want)
	}
	assert.Contains(t, content, "90.00")
	assert.NotContains(t, content, "2024-02-05")
}

func TestArchiveMonthWithoutRecords(t *testing.T) {
	a, dir := newTestArchiver(t)

	_, err := a.ArchiveMonth(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), januaryStore(), ratedSettings())
	assert.True(t, errors.Is(err, ErrNoRecords))

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "nothing is written")
}

func TestArchivePastMonths(t *testing.T) {
	a, _ := newTestArchiver(t)
	store := tracker.StoreFrom(map[string]tracker.DayRecord{
		"2023-11-20": {Start: "09:00", End: "17:00"},
		"2024-01-10": {Start: "09:00", End: "17:00"},
		"2024-02-01": {Start: "09:00", End: "17:00"},
	})
	current := time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)

	archived, err := a.ArchivePastMonths(current, store, tracker.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-11.md", "2024-01.md"}, archived)

	again, err := a.ArchivePastMonths(current, store, tracker.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, again, "existing archives are skipped")

	list, err := a.ListArchives()
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-11.md", "2024-01.md"}, list)
}

func TestListArchivesMissingDir(t *testing.T) {
	a, _ := newTestArchiver(t)
	list, err := a.ListArchives()
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = a.ReadArchive(january)
	assert.Error(t, err)
}
