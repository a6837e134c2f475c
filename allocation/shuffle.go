// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "fmt"

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates).
// The input slice is left untouched.
func Shuffle[T any](rng RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// DistributeCharities spreads charity IDs over the days as evenly as
// possible and returns them shuffled. The grand prize charity, if any, is
// left out of the pool and one day is reserved for it.
//
// With fill days and k charities, the first fill%k charities (input order)
// appear fill/k+1 times and the rest fill/k times.
func DistributeCharities(rng RNG, charityIDs []string, numDays int, grandPrizeCharityID string) ([]string, error) {
	regular := make([]string, 0, len(charityIDs))
	for _, id := range charityIDs {
		if grandPrizeCharityID != "" && id == grandPrizeCharityID {
			continue
		}
		regular = append(regular, id)
	}

	daysToFill := numDays
	if grandPrizeCharityID != "" {
		daysToFill--
	}
	if daysToFill <= 0 {
		return []string{}, nil
	}
	if len(regular) == 0 {
		return nil, fmt.Errorf("distribute %d days: %w", daysToFill, ErrNoEligibleCharity)
	}

	base := daysToFill / len(regular)
	remainder := daysToFill % len(regular)

	assignments := make([]string, 0, daysToFill)
	for i, id := range regular {
		count := base
		if i < remainder {
			count++
		}
		for range count {
			assignments = append(assignments, id)
		}
	}

	return Shuffle(rng, assignments), nil
}
