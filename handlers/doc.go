// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the advent-giving API.

# Handler Types

  - PlanningHandler: stateless helpers (advent dates, distribution preview)
  - CalendarHandler: calendar create, read, delete and redistribution
  - DayHandler: reveal, unreveal, paid and the two rerolls

Stateful handlers take the database and config:

	calendarHandler := handlers.NewCalendarHandler(db, cfg)

# Ownership

Creating a calendar returns an owner_key. Every later request for that
calendar must send it in the X-Owner-Key header.

# Day Lifecycle

	hidden → revealed → paid

Unreveal goes back to hidden. Paid is terminal. A revealed, unpaid,
non-grand-prize day may reroll its charity twice and its amount twice.
An amount reroll swaps with a hidden day so the calendar total is fixed.

# Errors

Domain errors map to status codes in one place:

	400  invalid input
	401  missing or wrong owner key
	404  unknown calendar or day
	409  the day or calendar is in the wrong state
	422  no distribution, charity or swap target could be found

Writes that lose a race with another request also report 409.
*/
package handlers
