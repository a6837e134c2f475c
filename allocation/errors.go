// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "errors"

var (
	ErrInvalidParams        = errors.New("invalid allocation parameters")
	ErrInfeasibleRange      = errors.New("no tier amounts between min and max")
	ErrNoEligibleCharity    = errors.New("no other charities available")
	ErrNoUnrevealedTarget   = errors.New("no unrevealed days to swap with")
	ErrConvergenceExhausted = errors.New("distribution does not match days and budget")
	ErrAmountMismatch       = errors.New("amount count does not match days to fill")
)

// Day lifecycle errors
var (
	ErrDayPaid          = errors.New("day is already paid")
	ErrDayHidden        = errors.New("day is not revealed")
	ErrDayRevealed      = errors.New("day is already revealed")
	ErrRerollLimit      = errors.New("reroll limit reached")
	ErrGrandPrizeLocked = errors.New("grand prize day cannot be rerolled")
)
