// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the advent-giving API.

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Planning (stateless):

	GET  /advent-dates?year=Y     - Advent start and end for a year
	POST /distributions/preview   - Generate tiers without storing them

Calendars (all but create require X-Owner-Key):

	POST   /calendars                   - Create, returns owner_key
	GET    /calendars/{id}              - Calendar, charities, tiers, days, progress
	DELETE /calendars/{id}              - Delete with all rows
	PUT    /calendars/{id}/distribution - Regenerate before any reveal

Days (require X-Owner-Key):

	POST /calendars/{id}/days/{dayID}/reveal
	POST /calendars/{id}/days/{dayID}/unreveal
	POST /calendars/{id}/days/{dayID}/paid
	POST /calendars/{id}/days/{dayID}/reroll-charity
	POST /calendars/{id}/days/{dayID}/reroll-amount

Every route except health and root is wrapped in middleware.WithLogging.
CORS is applied around the whole mux in main.
*/
package router
