// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CharityInput: name, url, notes, scope, is_grand_prize, grand_prize_amount
  - PreviewRequest: dates, charities, budget, optional tier adjustments
  - CreateCalendarRequest: name, dates, display_mode, charities, budget, optional tiers
  - RegenerateDistributionRequest: min_amount, max_amount, optional tiers

# Response Types

  - PreviewResponse: generated distribution, day count, calendar type
  - CreateCalendarResponse: calendar_id, owner_key, tiers
  - RegenerateDistributionResponse: tiers, min_amount, max_amount
  - RerollAmountResponse: updated day and the day it swapped with
  - AdventDatesResponse: Advent season for a year
  - ErrorResponse: error, message

# Domain Types

  - Calendar: settings and lifecycle state
  - Charity: a recipient; at most one per calendar is the grand prize
  - AmountTier: stored snapshot of the distribution
  - CalendarDay: one scheduled donation with reveal, paid and reroll state
  - Progress: revealed and paid totals
  - CalendarDetail: everything GET /calendars/{id} returns

Hidden days are sent through CalendarDay.Masked before leaving the server.

# Constants

Status values:

	StatusActive   = "active"
	StatusComplete = "complete"

Display modes:

	DisplayCalendarView = "calendar_view"
	DisplayCardGrid     = "card_grid"
*/
package models
