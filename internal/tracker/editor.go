package tracker

import "github.com/workhours/internal/timecalc"

// FormState is the unsaved edit buffer of the selected day.
type FormState struct {
	Start    string
	End      string
	IsOff    bool
	IsCustom bool
}

// LoadForm rebuilds the buffer for key. A stored record keeps its values,
// with a missing start falling back to the default start; an unrecorded day
// starts from the default start and an empty end.
func LoadForm(key string, store *Store, settings Settings) FormState {
	rec, ok := store.Get(key)
	if !ok {
		return blankForm(settings)
	}
	start := rec.Start
	if start == "" {
		start = settings.DefaultStartTime
	}
	return FormState{
		Start:    start,
		End:      rec.End,
		IsOff:    rec.IsOff,
		IsCustom: rec.IsCustom,
	}
}

func blankForm(settings Settings) FormState {
	return FormState{Start: settings.DefaultStartTime}
}

// SetStart, SetEnd and SetOff record a user edit and mark the buffer custom.
func (f *FormState) SetStart(v string) {
	f.Start = v
	f.IsCustom = true
}

func (f *FormState) SetEnd(v string) {
	f.End = v
	f.IsCustom = true
}

func (f *FormState) SetOff(off bool) {
	f.IsOff = off
	f.IsCustom = true
}

// ValidateForm applies the save rules without touching any store.
func ValidateForm(form FormState) error {
	if form.IsOff {
		return nil
	}
	if form.Start == "" || form.End == "" {
		return &ValidationError{Field: FieldStartEnd, Message: "start and end times are required"}
	}
	start, err := timecalc.ParseClock(form.Start)
	if err != nil {
		return &ValidationError{Field: FieldStartEnd, Message: err.Error()}
	}
	end, err := timecalc.ParseClock(form.End)
	if err != nil {
		return &ValidationError{Field: FieldStartEnd, Message: err.Error()}
	}
	if start >= end {
		return &ValidationError{Field: FieldEnd, Message: "end time must be after start time"}
	}
	return nil
}

// SaveDay validates the buffer and commits it under key. On a validation
// error the store is unchanged. The returned bool reports whether a record
// was written.
func SaveDay(form FormState, key string, store *Store) (DayRecord, bool, error) {
	if err := ValidateForm(form); err != nil {
		return DayRecord{}, false, err
	}
	rec, written := commitForm(form, key, store)
	return rec, written, nil
}

// commitForm stores the buffer whole and marked custom, or removes key when
// the buffer carries no data.
func commitForm(form FormState, key string, store *Store) (DayRecord, bool) {
	rec := DayRecord{Start: form.Start, End: form.End, IsOff: form.IsOff, IsCustom: true}
	if rec.Empty() {
		store.Delete(key)
		return DayRecord{}, false
	}
	store.Set(key, rec)
	return rec, true
}

// ClearDay removes key and returns a fresh buffer.
func ClearDay(key string, store *Store, settings Settings) FormState {
	store.Delete(key)
	return blankForm(settings)
}
