package tracker

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// DayRecord is one calendar day's work record.
type DayRecord struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	// IsOff marks a holiday or leave day; Start and End are ignored for totals.
	IsOff bool `json:"isOff"`
	// IsCustom marks an explicit user edit that default propagation must not touch.
	IsCustom bool `json:"isCustom"`
}

// Empty reports whether the record carries no data at all.
func (r DayRecord) Empty() bool {
	return !r.IsOff && r.Start == "" && r.End == ""
}

// Settings are the global defaults.
type Settings struct {
	DefaultStartTime string `json:"defaultStartTime"`
	DefaultEndTime   string `json:"defaultEndTime"`
	// HourlyRate is a decimal string; empty disables wage calculation.
	HourlyRate string `json:"hourlyRate"`
	// HolidayDays are weekday numbers, 0=Sunday .. 6=Saturday.
	HolidayDays []int `json:"holidayDays"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultStartTime: "08:00",
		DefaultEndTime:   "17:00",
		HourlyRate:       "",
		HolidayDays:      []int{},
	}
}

// Rate returns the parsed hourly rate, or 0 when it is unset, unparsable
// or not finite.
func (s Settings) Rate() float64 {
	if strings.TrimSpace(s.HourlyRate) == "" {
		return 0
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(s.HourlyRate), 64)
	if err != nil || r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Clone returns a copy that shares no slice with s.
func (s Settings) Clone() Settings {
	out := s
	out.HolidayDays = slices.Clone(s.HolidayDays)
	if out.HolidayDays == nil {
		out.HolidayDays = []int{}
	}
	return out
}

// Store maps date keys (YYYY-MM-DD) to day records. A missing key is an
// unrecorded day.
type Store struct {
	days map[string]DayRecord
}

func NewStore() *Store {
	return &Store{days: make(map[string]DayRecord)}
}

// StoreFrom wraps a copy of entries.
func StoreFrom(entries map[string]DayRecord) *Store {
	s := NewStore()
	for k, v := range entries {
		s.days[k] = v
	}
	return s
}

func (s *Store) Get(key string) (DayRecord, bool) {
	r, ok := s.days[key]
	return r, ok
}

// Set replaces the whole record under key.
func (s *Store) Set(key string, rec DayRecord) {
	s.days[key] = rec
}

func (s *Store) Delete(key string) {
	delete(s.days, key)
}

func (s *Store) Len() int {
	return len(s.days)
}

// Entries returns a copy of the full mapping.
func (s *Store) Entries() map[string]DayRecord {
	out := make(map[string]DayRecord, len(s.days))
	for k, v := range s.days {
		out[k] = v
	}
	return out
}

// Keys returns the stored date keys in ascending order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *Store) Clone() *Store {
	return StoreFrom(s.days)
}
