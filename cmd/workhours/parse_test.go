package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 4, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"today", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Yesterday", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"tomorrow", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"2023-12-31", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDay(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	_, err := parseDay("31/12/2023", now)
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	got, err := parseMonth("2025-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseMonth("January", time.UTC)
	assert.Error(t, err)
}

func TestParseHolidays(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", []int{}, false},
		{"sat,sun", []int{0, 6}, false},
		{"0, 6", []int{0, 6}, false},
		{"Friday,fri,5", []int{5}, false},
		{"7", nil, true},
		{"weekend", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHolidays(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatHolidays(t *testing.T) {
	assert.Equal(t, "none", formatHolidays(nil))
	assert.Equal(t, "Sun,Sat", formatHolidays([]int{0, 6}))
}
