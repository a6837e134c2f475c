// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package advent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-01")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.December, 1), d)
	assert.Equal(t, "2025-12-01", FormatDate(d))

	for _, bad := range []string{"", "2025-13-01", "12/01/2025", "2025-12-32"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestEachDay(t *testing.T) {
	days, err := EachDay(Date(2025, time.December, 30), Date(2026, time.January, 2))
	require.NoError(t, err)

	var got []string
	for _, d := range days {
		got = append(got, FormatDate(d))
	}
	assert.Equal(t, []string{"2025-12-30", "2025-12-31", "2026-01-01", "2026-01-02"}, got)

	single, err := EachDay(Date(2025, time.December, 25), Date(2025, time.December, 25))
	require.NoError(t, err)
	assert.Len(t, single, 1)

	_, err = EachDay(Date(2025, time.December, 25), Date(2025, time.December, 24))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDayCount(t *testing.T) {
	tests := []struct {
		start, end time.Time
		want       int
	}{
		{Date(2025, time.December, 1), Date(2025, time.December, 25), 25},
		{Date(2025, time.December, 1), Date(2025, time.December, 31), 31},
		{Date(2025, time.December, 25), Date(2025, time.December, 25), 1},
		{Date(2024, time.February, 28), Date(2024, time.March, 1), 3},
		{Date(2025, time.December, 2), Date(2025, time.December, 1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DayCount(tt.start, tt.end), "%s..%s", FormatDate(tt.start), FormatDate(tt.end))
	}
}

func TestChristianAdventDates(t *testing.T) {
	tests := []struct {
		year  int
		start string
	}{
		{2025, "2025-11-30"},
		{2024, "2024-12-01"},
		{2023, "2023-12-03"},
		{2022, "2022-11-27"}, // Christmas on a Sunday
		{2021, "2021-11-28"},
	}

	for _, tt := range tests {
		start, end := ChristianAdventDates(tt.year)
		assert.Equal(t, tt.start, FormatDate(start), "year %d", tt.year)
		assert.Equal(t, time.Sunday, start.Weekday())
		assert.Equal(t, Date(tt.year, time.December, 24), end)
	}
}

func TestCalendarTypeOf(t *testing.T) {
	tests := []struct {
		start, end string
		want       CalendarType
	}{
		{"2025-12-01", "2025-12-25", TypeAdvent},
		{"2025-12-01", "2025-12-31", TypeFullDecember},
		{"2025-12-19", "2025-12-25", TypeChristmasWeek},
		{"2025-12-25", "2025-12-25", TypeChristmasWeek},
		{"2025-12-18", "2025-12-25", TypeCustom},
		{"2025-11-30", "2025-12-24", TypeCustom},
		{"2025-12-01", "2025-12-24", TypeCustom},
	}

	for _, tt := range tests {
		start, err := ParseDate(tt.start)
		require.NoError(t, err)
		end, err := ParseDate(tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.want, CalendarTypeOf(start, end), "%s..%s", tt.start, tt.end)
	}
}
