// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package advent

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format for calendar days.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("end date is before start date")

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date builds a UTC calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EachDay returns every day from start to end inclusive.
func EachDay(start, end time.Time) ([]time.Time, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%s to %s: %w", FormatDate(start), FormatDate(end), ErrInvalidRange)
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// DayCount is the number of days from start to end inclusive, or 0 when
// end is before start.
func DayCount(start, end time.Time) int {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ChristianAdventDates returns the first Sunday of Advent and Christmas Eve
// for year. Advent starts on the fourth Sunday before Christmas Day.
func ChristianAdventDates(year int) (start, end time.Time) {
	christmas := Date(year, time.December, 25)
	// Sunday on or before Christmas, then three more weeks back
	lastSunday := christmas.AddDate(0, 0, -int(christmas.Weekday()))
	if christmas.Weekday() == time.Sunday {
		lastSunday = christmas.AddDate(0, 0, -7)
	}
	return lastSunday.AddDate(0, 0, -21), Date(year, time.December, 24)
}

// CalendarType labels a date range.
type CalendarType string

const (
	TypeAdvent        CalendarType = "Advent Calendar"
	TypeFullDecember  CalendarType = "Full December"
	TypeChristmasWeek CalendarType = "Christmas Week"
	TypeCustom        CalendarType = "Custom"
)

// CalendarTypeOf classifies the range by its start and end day. Years are
// ignored.
func CalendarTypeOf(start, end time.Time) CalendarType {
	startsDec1 := start.Month() == time.December && start.Day() == 1
	endsDec := end.Month() == time.December

	switch {
	case startsDec1 && endsDec && end.Day() == 25:
		return TypeAdvent
	case startsDec1 && endsDec && end.Day() == 31:
		return TypeFullDecember
	case endsDec && end.Day() == 25 && DayCount(start, end) <= 7:
		return TypeChristmasWeek
	}
	return TypeCustom
}
