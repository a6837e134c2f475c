// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package advent holds the calendar helpers around the allocation engine.

Dates are plain calendar days in "YYYY-MM-DD" form. They are parsed at UTC
midnight so a day never shifts with the server's time zone:

	start, _ := advent.ParseDate("2025-12-01")
	days := advent.EachDay(start, end) // inclusive

ChristianAdventDates returns the liturgical Advent season for a year (the
fourth Sunday before Christmas through Christmas Eve). CalendarTypeOf names
common ranges such as "Advent Calendar" and "Full December".

BudgetDefaults suggests a min/max donation for a total budget and
FormatCurrency renders whole-dollar amounts as "$1,234".
*/
package advent
