// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package setup builds a calendar configuration step by step.

A Setup is a plain value owned by the caller. Each step validates its input
and returns an updated copy, so a request handler can replay the wizard
without shared state:

	s := setup.New(time.Now())
	s, err = s.WithDates(start, end)
	s, err = s.WithCharities(charities)
	s, err = s.WithBudget(5000, 0, 0) // zero min/max use advent.BudgetDefaults
	s, dist, err := s.Distribute()
	s = s.AdjustTier(100, 1)
	err = s.Validate()

Changing dates or charities clears the tiers, since the day count or grand
prize may no longer match.
*/
package setup
