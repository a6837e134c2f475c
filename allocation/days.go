// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"fmt"
	"time"
)

// DayParams are the inputs to CreateDayAssignments. Amounts must already
// be flattened (see ExpandTiers) and hold one entry per non-grand-prize day.
// The grand prize is configured only when both GrandPrizeCharityID and
// GrandPrizeAmount are set.
type DayParams struct {
	Dates               []time.Time
	CharityIDs          []string
	Amounts             []int
	GrandPrizeCharityID string
	GrandPrizeAmount    int
}

// Assignment is the generated charity and amount for one date.
type Assignment struct {
	Date         time.Time `json:"date"`
	CharityID    string    `json:"charity_id"`
	Amount       int       `json:"amount"`
	IsGrandPrize bool      `json:"is_grand_prize"`
}

// CreateDayAssignments builds one assignment per date, in date order.
//
// Random draws happen in a fixed order: amounts are shuffled, charities are
// distributed and shuffled, then the grand prize date is picked uniformly.
// The remaining dates consume the shuffled charities and amounts in order,
// so every input amount is used exactly once.
func CreateDayAssignments(rng RNG, p DayParams) ([]Assignment, error) {
	hasGrandPrize := p.GrandPrizeCharityID != ""
	if hasGrandPrize != (p.GrandPrizeAmount > 0) {
		return nil, fmt.Errorf("%w: grand prize needs both a charity and an amount", ErrInvalidParams)
	}
	if len(p.Dates) == 0 {
		return nil, fmt.Errorf("%w: no dates", ErrInvalidParams)
	}

	daysToFill := len(p.Dates)
	if hasGrandPrize {
		daysToFill--
	}
	if len(p.Amounts) != daysToFill {
		return nil, fmt.Errorf("%w: %d amounts for %d days", ErrAmountMismatch, len(p.Amounts), daysToFill)
	}

	amounts := Shuffle(rng, p.Amounts)

	charities, err := DistributeCharities(rng, p.CharityIDs, len(p.Dates), p.GrandPrizeCharityID)
	if err != nil {
		return nil, err
	}

	grandPrizeIndex := -1
	if hasGrandPrize {
		grandPrizeIndex = rng.IntN(len(p.Dates))
	}

	assignments := make([]Assignment, 0, len(p.Dates))
	next := 0
	for i, date := range p.Dates {
		if i == grandPrizeIndex {
			assignments = append(assignments, Assignment{
				Date:         date,
				CharityID:    p.GrandPrizeCharityID,
				Amount:       p.GrandPrizeAmount,
				IsGrandPrize: true,
			})
			continue
		}
		assignments = append(assignments, Assignment{
			Date:      date,
			CharityID: charities[next],
			Amount:    amounts[next],
		})
		next++
	}

	return assignments, nil
}
