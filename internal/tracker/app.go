package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/workhours/internal/messages"
	"github.com/workhours/internal/storage"
	"github.com/workhours/internal/timecalc"
	"github.com/workhours/internal/work"
)

// Namespaces of the persisted state.
const (
	NamespaceDays     = "workTimeData"
	NamespaceSettings = "tracker_settings"
	NamespaceMonth    = "tracker_lastDate"
	NamespaceDarkMode = "tracker_darkMode"
)

// monthLayout matches JavaScript's Date.toISOString.
const monthLayout = "2006-01-02T15:04:05.000Z07:00"

// Clock abstracts time.Now for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type nopNotifier struct{}

func (nopNotifier) Notify(Kind, string, time.Duration) {}

// Options wires an App to its collaborators. Zero values get defaults.
type Options struct {
	Notifier       Notifier
	Messages       *messages.Catalog
	Clock          Clock
	Logger         *zerolog.Logger
	NotifyDuration time.Duration
}

// App owns the whole tracker state: day records, settings, the viewed month,
// the display mode and the edit buffer of the selected day. Every mutation is
// staged on a copy, persisted, and only then committed.
type App struct {
	kv        storage.KV
	notifier  Notifier
	msgs      *messages.Catalog
	clock     Clock
	log       zerolog.Logger
	notifyFor time.Duration

	store    *Store
	settings Settings
	month    time.Time
	selected time.Time
	darkMode bool
	form     FormState
}

// Open restores the state from kv. Missing or malformed values fall back to
// their defaults: no records, default settings, the current date, light mode.
func Open(kv storage.KV, opts Options) *App {
	a := &App{
		kv:        kv,
		notifier:  opts.Notifier,
		msgs:      opts.Messages,
		clock:     opts.Clock,
		notifyFor: opts.NotifyDuration,
		log:       zerolog.Nop(),
	}
	if a.notifier == nil {
		a.notifier = nopNotifier{}
	}
	if a.msgs == nil {
		a.msgs = messages.New(messages.DefaultLanguage)
	}
	if a.clock == nil {
		a.clock = RealClock{}
	}
	if opts.Logger != nil {
		a.log = *opts.Logger
	}
	if a.notifyFor <= 0 {
		a.notifyFor = DefaultNotifyDuration
	}

	now := a.clock.Now()
	a.store = a.loadDays()
	a.settings = a.loadSettings()
	a.month = a.loadMonth(now)
	a.darkMode = a.loadDarkMode()
	a.selected = timecalc.StartOfDay(a.month)
	a.form = LoadForm(timecalc.DateKey(a.selected), a.store, a.settings)
	return a
}

func (a *App) loadRaw(namespace string) (string, bool) {
	raw, ok, err := a.kv.Load(namespace)
	if err != nil {
		a.log.Warn().Err(err).Str("namespace", namespace).Msg("cannot load stored value, using default")
		return "", false
	}
	return raw, ok
}

func (a *App) loadDays() *Store {
	raw, ok := a.loadRaw(NamespaceDays)
	if !ok {
		return NewStore()
	}
	var entries map[string]DayRecord
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		a.log.Debug().Err(err).Str("namespace", NamespaceDays).Msg("malformed day records, starting empty")
		return NewStore()
	}
	store := NewStore()
	for key, rec := range entries {
		if _, err := timecalc.ParseDateKey(key, time.Local); err != nil {
			a.log.Debug().Str("key", key).Msg("skipping record with malformed date key")
			continue
		}
		store.Set(key, rec)
	}
	return store
}

func (a *App) loadSettings() Settings {
	raw, ok := a.loadRaw(NamespaceSettings)
	if !ok {
		return DefaultSettings()
	}
	// Fields missing from the stored value keep their defaults.
	s := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		a.log.Debug().Err(err).Str("namespace", NamespaceSettings).Msg("malformed settings, using defaults")
		return DefaultSettings()
	}
	if err := ValidateSettings(s); err != nil {
		a.log.Debug().Err(err).Str("namespace", NamespaceSettings).Msg("invalid settings, using defaults")
		return DefaultSettings()
	}
	return s.Clone()
}

func (a *App) loadMonth(now time.Time) time.Time {
	raw, ok := a.loadRaw(NamespaceMonth)
	if !ok {
		return now
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		a.log.Debug().Err(err).Str("namespace", NamespaceMonth).Msg("malformed month, using today")
		return now
	}
	return t.In(now.Location())
}

func (a *App) loadDarkMode() bool {
	raw, _ := a.loadRaw(NamespaceDarkMode)
	return raw == "true"
}

// Store returns a copy of the day records.
func (a *App) Store() *Store {
	return a.store.Clone()
}

func (a *App) Settings() Settings {
	return a.settings.Clone()
}

// Month returns the last viewed month's reference date.
func (a *App) Month() time.Time {
	return a.month
}

func (a *App) Selected() time.Time {
	return a.selected
}

func (a *App) SelectedKey() string {
	return timecalc.DateKey(a.selected)
}

func (a *App) DarkMode() bool {
	return a.darkMode
}

func (a *App) Form() FormState {
	return a.form
}

// MonthDays returns the days of the viewed month.
func (a *App) MonthDays() []time.Time {
	return work.DaysInMonth(a.month.Year(), a.month.Month(), a.month.Location())
}

func (a *App) MonthlyStats() MonthStats {
	return MonthlyStats(a.MonthDays(), a.store, a.settings)
}

func (a *App) WeeklyStats() WeekStats {
	return WeeklyStats(a.selected, a.store, a.settings)
}

// Breakdown evaluates the viewed month day by day.
func (a *App) Breakdown() []DaySummary {
	return DayBreakdown(a.MonthDays(), a.store, a.settings)
}

// WeekBreakdown evaluates the week of the selected day.
func (a *App) WeekBreakdown() []DaySummary {
	return DayBreakdown(work.WeekDays(a.selected), a.store, a.settings)
}

func (a *App) Preview() *DayPreview {
	return Preview(a.form, a.settings)
}

// SelectDay makes day the selected day and rebuilds the edit buffer.
func (a *App) SelectDay(day time.Time) {
	a.selected = timecalc.StartOfDay(day)
	a.form = LoadForm(a.SelectedKey(), a.store, a.settings)
}

// EditForm applies edits to the buffer, e.g. via FormState.SetStart.
func (a *App) EditForm(edit func(f *FormState)) {
	edit(&a.form)
}

// SaveDay validates the buffer and commits it for the selected day.
func (a *App) SaveDay() error {
	key := a.SelectedKey()
	staged := a.store.Clone()
	if _, _, err := SaveDay(a.form, key, staged); err != nil {
		return a.reject(err)
	}
	if err := a.saveJSON(NamespaceDays, staged.Entries()); err != nil {
		return a.fail(err)
	}
	a.store = staged
	a.form = LoadForm(key, a.store, a.settings)

	id := messages.HoursSaved
	if a.form.IsOff {
		id = messages.LeaveSaved
	}
	a.notify(KindSuccess, a.msgs.Text(id, nil))
	a.log.Debug().Str("day", key).Bool("off", a.form.IsOff).Msg("day saved")
	return nil
}

// ClearDay removes the selected day's record and resets the buffer.
func (a *App) ClearDay() error {
	key := a.SelectedKey()
	staged := a.store.Clone()
	form := ClearDay(key, staged, a.settings)
	if err := a.saveJSON(NamespaceDays, staged.Entries()); err != nil {
		return a.fail(err)
	}
	a.store = staged
	a.form = form
	a.notify(KindSuccess, a.msgs.Text(messages.DayCleared, nil))
	a.log.Debug().Str("day", key).Msg("day cleared")
	return nil
}

// ApplySettings commits new settings and propagates them over the viewed month.
func (a *App) ApplySettings(s Settings) error {
	s = s.Clone()
	if err := ValidateSettings(s); err != nil {
		return a.reject(err)
	}
	staged := a.store.Clone()
	ApplySettings(a.MonthDays(), staged, s)

	if err := a.saveJSON(NamespaceSettings, s); err != nil {
		return a.fail(err)
	}
	if err := a.saveJSON(NamespaceDays, staged.Entries()); err != nil {
		if rbErr := a.saveJSON(NamespaceSettings, a.settings); rbErr != nil {
			a.log.Error().Err(rbErr).Msg("cannot restore previous settings")
		}
		return a.fail(err)
	}
	a.settings = s
	a.store = staged
	a.form = LoadForm(a.SelectedKey(), a.store, a.settings)
	a.notify(KindSuccess, a.msgs.Text(messages.SettingsSaved, nil))
	a.log.Debug().Int("records", a.store.Len()).Msg("settings applied")
	return nil
}

// ChangeMonth moves the view offset months from the current one.
func (a *App) ChangeMonth(offset int) error {
	return a.SetMonth(work.ShiftMonth(a.month, offset))
}

// SetMonth shows the month containing t. The selected day becomes today when
// that month contains today, otherwise the first of the month.
func (a *App) SetMonth(t time.Time) error {
	month := work.MonthStart(t)
	if err := a.kv.Save(NamespaceMonth, month.UTC().Format(monthLayout)); err != nil {
		return a.fail(err)
	}
	a.month = month
	a.SelectDay(work.SelectionForMonth(month, a.clock.Now()))
	a.notify(KindSuccess, a.msgs.Text(messages.MonthChanged, map[string]any{"Month": month.Format("January 2006")}))
	return nil
}

// SetDarkMode stores the display mode flag.
func (a *App) SetDarkMode(on bool) error {
	if err := a.kv.Save(NamespaceDarkMode, strconv.FormatBool(on)); err != nil {
		return a.fail(err)
	}
	a.darkMode = on
	id := messages.DarkModeOff
	if on {
		id = messages.DarkModeOn
	}
	a.notify(KindSuccess, a.msgs.Text(id, nil))
	return nil
}

func (a *App) ToggleDarkMode() error {
	return a.SetDarkMode(!a.darkMode)
}

func (a *App) saveJSON(namespace string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", namespace, err)
	}
	return a.kv.Save(namespace, string(data))
}

func (a *App) notify(kind Kind, message string) {
	a.notifier.Notify(kind, message, a.notifyFor)
}

// reject reports a validation failure. State is unchanged.
func (a *App) reject(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return a.fail(err)
	}
	var text string
	switch verr.Field {
	case FieldStartEnd:
		text = a.msgs.Text(messages.TimesRequired, nil)
		if a.form.Start != "" && a.form.End != "" {
			// Both present, so the format was wrong.
			text = a.msgs.Text(messages.InvalidTime, nil)
		}
	case FieldEnd:
		text = a.msgs.Text(messages.EndBeforeStart, nil)
	default:
		text = a.msgs.Text(messages.InvalidSettings, map[string]any{"Detail": verr.Message})
	}
	a.notify(KindError, text)
	return err
}

// fail reports an unexpected failure. State is unchanged.
func (a *App) fail(err error) error {
	a.log.Error().Err(err).Msg("operation aborted")
	a.notify(KindError, a.msgs.Text(messages.SaveFailed, map[string]any{"Detail": err.Error()}))
	return err
}
