// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package advent

// BudgetRange is a suggested per-day donation range.
type BudgetRange struct {
	MinAmount int `json:"min_amount"`
	MaxAmount int `json:"max_amount"`
}

var budgetBrackets = []struct {
	below int
	rng   BudgetRange
}{
	{500, BudgetRange{10, 100}},
	{1000, BudgetRange{25, 200}},
	{5000, BudgetRange{50, 500}},
	{10000, BudgetRange{100, 1000}},
}

// BudgetDefaults suggests min and max amounts for a total budget.
func BudgetDefaults(totalBudget int) BudgetRange {
	for _, b := range budgetBrackets {
		if totalBudget < b.below {
			return b.rng
		}
	}
	return BudgetRange{MinAmount: 100, MaxAmount: 2000}
}
