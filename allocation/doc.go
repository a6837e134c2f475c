// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package allocation turns a donation budget into a day-by-day giving schedule.

Everything here is pure: no I/O, no package state. Randomness comes from an
injected RNG so tests can pin exact permutations.

# Tier Distribution

GenerateAmountTiers splits a budget into (amount, count) tiers drawn from a
fixed list of round amounts. Smaller amounts get more days:

	dist, err := allocation.GenerateAmountTiers(allocation.TierParams{
		MinAmount:   50,
		MaxAmount:   500,
		TotalDays:   25,
		TotalBudget: 5000,
	})

Day count is always exact. The budget is matched by moving days between
tiers and is best-effort; callers must run dist.Check() before persisting.

# Day Assignment

CreateDayAssignments shuffles the flattened tier amounts, spreads charities
as evenly as possible and optionally drops the grand prize on a random date:

	amounts := allocation.ExpandTiers(dist.Tiers)
	days, err := allocation.CreateDayAssignments(rng, allocation.DayParams{...})

# Rerolls

A revealed, unpaid, non-grand-prize day may swap its charity or its amount
at most twice each:

	id, err := allocation.GetNewCharity(rng, current, all, grandPrizeID)
	swap, err := allocation.SwapAmounts(rng, dayID, amount, hiddenDays)

Amount rerolls are swaps, so the calendar total never changes.

# Day Lifecycle

DayStatus encodes hidden → revealed → paid, plus revealed → hidden while
unpaid. Paid is terminal.
*/
package allocation
