// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

const (
	MaxCharityRerolls = 2
	MaxAmountRerolls  = 2
)

// CanRerollCharity reports whether a day still has a charity reroll left.
func CanRerollCharity(rerollsUsed int, isGrandPrize bool) bool {
	return !isGrandPrize && rerollsUsed < MaxCharityRerolls
}

// CanRerollAmount reports whether a day still has an amount reroll left.
func CanRerollAmount(rerollsUsed int, isGrandPrize bool) bool {
	return !isGrandPrize && rerollsUsed < MaxAmountRerolls
}

// GetNewCharity picks a replacement charity uniformly from allCharityIDs,
// never returning currentCharityID or grandPrizeCharityID.
func GetNewCharity(rng RNG, currentCharityID string, allCharityIDs []string, grandPrizeCharityID string) (string, error) {
	available := make([]string, 0, len(allCharityIDs))
	for _, id := range allCharityIDs {
		if id == currentCharityID {
			continue
		}
		if grandPrizeCharityID != "" && id == grandPrizeCharityID {
			continue
		}
		available = append(available, id)
	}

	if len(available) == 0 {
		return "", ErrNoEligibleCharity
	}

	return available[rng.IntN(len(available))], nil
}

// DayAmount is a swap candidate.
type DayAmount struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// Swap describes an amount reroll. The caller writes NewAmount to the
// current day and TargetNewAmount to TargetDayID, together.
type Swap struct {
	TargetDayID     string `json:"target_day_id"`
	NewAmount       int    `json:"new_amount"`
	TargetNewAmount int    `json:"target_new_amount"`
}

// SwapAmounts picks one of the unrevealed days (other than the current one)
// uniformly and trades amounts with it. The multiset of amounts across the
// calendar is unchanged once both sides are written.
func SwapAmounts(rng RNG, currentDayID string, currentAmount int, unrevealed []DayAmount) (Swap, error) {
	pool := make([]DayAmount, 0, len(unrevealed))
	for _, d := range unrevealed {
		if d.ID != currentDayID {
			pool = append(pool, d)
		}
	}

	if len(pool) == 0 {
		return Swap{}, ErrNoUnrevealedTarget
	}

	target := pool[rng.IntN(len(pool))]

	return Swap{
		TargetDayID:     target.ID,
		NewAmount:       target.Amount,
		TargetNewAmount: currentAmount,
	}, nil
}
