// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"fmt"
	"math"
)

// ReferenceAmounts are the round donation amounts tiers are drawn from.
var ReferenceAmounts = []int{
	1, 5, 10, 15, 20, 25, 50, 75, 100, 150, 200, 250, 300, 400, 500,
	750, 1000, 1500, 2000, 2500, 3000, 5000,
}

const (
	// decaySteepness controls how quickly weight falls off with rank.
	decaySteepness = 2.5

	// MaxBudgetIterations bounds the budget repair loop.
	MaxBudgetIterations = 1000
)

// AmountTier means Count days each donate Amount.
type AmountTier struct {
	Amount int `json:"amount"`
	Count  int `json:"count"`
}

// GrandPrize is the single day that sits outside the tier list.
type GrandPrize struct {
	Amount int `json:"amount"`
	Count  int `json:"count"`
}

// TierParams are the inputs to GenerateAmountTiers. TotalDays includes the
// grand prize day when GrandPrizeAmount is non-zero.
type TierParams struct {
	MinAmount        int
	MaxAmount        int
	TotalDays        int
	TotalBudget      int
	GrandPrizeAmount int
}

// Distribution is the result of GenerateAmountTiers.
type Distribution struct {
	Tiers        []AmountTier `json:"tiers"`
	Subtotal     int          `json:"subtotal"`
	GrandPrize   *GrandPrize  `json:"grand_prize"`
	Total        int          `json:"total"`
	TotalDays    int          `json:"total_days"`
	TargetBudget int          `json:"target_budget"`
	Converged    bool         `json:"converged"`
	Iterations   int          `json:"iterations"`
}

// Check reports whether the distribution covers every day and spends the
// whole budget. A non-nil error wraps ErrConvergenceExhausted.
func (d Distribution) Check() error {
	days := DayCount(d.Tiers)
	if d.GrandPrize != nil {
		days++
	}
	if days != d.TotalDays {
		return fmt.Errorf("%w: %d days allocated, want %d", ErrConvergenceExhausted, days, d.TotalDays)
	}
	if d.Total != d.TargetBudget {
		return fmt.Errorf("%w: total %d, want %d", ErrConvergenceExhausted, d.Total, d.TargetBudget)
	}
	return nil
}

// GenerateAmountTiers partitions the budget into amount tiers.
//
// Candidate amounts are the reference amounts inside [MinAmount, MaxAmount].
// Each gets weight exp(-2.5 * rank/(n-1)), so smaller amounts get more days.
// Counts are repaired until they sum to the ordinary day count exactly, then
// days are moved between tiers to approach the budget; a tier may empty out
// along the way and is dropped from the result. Day count always wins
// over budget; a budget that cannot be hit comes back with Converged false.
func GenerateAmountTiers(p TierParams) (Distribution, error) {
	if p.MinAmount <= 0 || p.MaxAmount < p.MinAmount || p.TotalDays < 1 || p.GrandPrizeAmount < 0 {
		return Distribution{}, fmt.Errorf("%w: min=%d max=%d days=%d grand=%d",
			ErrInvalidParams, p.MinAmount, p.MaxAmount, p.TotalDays, p.GrandPrizeAmount)
	}

	availableBudget := p.TotalBudget
	availableDays := p.TotalDays
	var grand *GrandPrize
	if p.GrandPrizeAmount > 0 {
		availableBudget -= p.GrandPrizeAmount
		availableDays--
		grand = &GrandPrize{Amount: p.GrandPrizeAmount, Count: 1}
	}

	candidates := candidateAmounts(p.MinAmount, p.MaxAmount)
	if len(candidates) == 0 {
		return Distribution{}, fmt.Errorf("%w: [%d, %d]", ErrInfeasibleRange, p.MinAmount, p.MaxAmount)
	}

	tiers := []AmountTier{}
	iterations := 0
	if availableDays > 0 {
		tiers = initialTiers(candidates, availableDays)
		balanceDayCount(tiers, availableDays)
		// tiers emptied here stay available as move destinations
		iterations = balanceBudget(tiers, availableBudget)
		tiers = dropEmpty(tiers)
	}

	subtotal := Subtotal(tiers)
	total := subtotal
	if grand != nil {
		total += grand.Amount
	}

	return Distribution{
		Tiers:        tiers,
		Subtotal:     subtotal,
		GrandPrize:   grand,
		Total:        total,
		TotalDays:    p.TotalDays,
		TargetBudget: p.TotalBudget,
		Converged:    subtotal == availableBudget && DayCount(tiers) == max(availableDays, 0),
		Iterations:   iterations,
	}, nil
}

func candidateAmounts(minAmount, maxAmount int) []int {
	var out []int
	for _, a := range ReferenceAmounts {
		if a >= minAmount && a <= maxAmount {
			out = append(out, a)
		}
	}
	return out
}

func initialTiers(candidates []int, days int) []AmountTier {
	n := len(candidates)
	weights := make([]float64, n)
	var totalWeight float64
	for i := range candidates {
		rank := 0.0
		if n > 1 {
			rank = float64(i) / float64(n-1)
		}
		weights[i] = math.Exp(-decaySteepness * rank)
		totalWeight += weights[i]
	}

	tiers := make([]AmountTier, n)
	for i, amount := range candidates {
		count := int(math.Round(weights[i] / totalWeight * float64(days)))
		tiers[i] = AmountTier{Amount: amount, Count: max(1, count)}
	}
	return tiers
}

// balanceDayCount fixes counts to sum to days. Tiers are in ascending
// amount order. Each step moves the sum by one toward the target, so it
// terminates.
func balanceDayCount(tiers []AmountTier, days int) {
	for sum := DayCount(tiers); sum != days; sum = DayCount(tiers) {
		if sum < days {
			tiers[0].Count++
			continue
		}
		i := highestWithCountAbove(tiers, 1)
		if i < 0 {
			// every tier is at 1: drop the largest amount
			i = highestWithCountAbove(tiers, 0)
		}
		tiers[i].Count--
	}
}

func highestWithCountAbove(tiers []AmountTier, floor int) int {
	for i := len(tiers) - 1; i >= 0; i-- {
		if tiers[i].Count > floor {
			return i
		}
	}
	return -1
}

// balanceBudget moves days between tiers until the subtotal hits budget, no
// move helps, or the iteration cap is reached. Every applied step strictly
// shrinks |budget - subtotal| and leaves the day count unchanged.
//
// Single moves from tiers with spare days come first. A move that empties a
// tier is only taken when none of those helps, and a pair of moves only when
// no single move does.
func balanceBudget(tiers []AmountTier, budget int) int {
	iterations := 0
	for iterations < MaxBudgetIterations {
		diff := budget - Subtotal(tiers)
		if diff == 0 {
			break
		}

		from, to, ok := pickMove(tiers, diff, 2)
		if !ok {
			from, to, ok = pickMove(tiers, diff, 1)
		}
		if ok {
			tiers[from].Count--
			tiers[to].Count++
			iterations++
			continue
		}

		pair, ok := pickPairMove(tiers, diff)
		if !ok {
			break
		}
		for _, m := range pair {
			tiers[m.from].Count--
			tiers[m.to].Count++
		}
		iterations++
	}
	return iterations
}

// pickMove chooses a source tier with at least minSource days and a
// destination tier. It prefers the largest change that does not overshoot
// diff; failing that, the smallest overshoot that still lands closer to the
// budget. Ties go to the lowest source amount, then the lowest destination
// amount.
func pickMove(tiers []AmountTier, diff, minSource int) (from, to int, ok bool) {
	need := diff
	sign := 1
	if diff < 0 {
		need = -diff
		sign = -1
	}

	bestFit, fitFrom, fitTo := 0, -1, -1
	bestOver, overFrom, overTo := 0, -1, -1

	for i := range tiers {
		if tiers[i].Count < minSource {
			continue
		}
		for j := range tiers {
			if i == j {
				continue
			}
			gain := (tiers[j].Amount - tiers[i].Amount) * sign
			if gain <= 0 {
				continue
			}
			switch {
			case gain <= need:
				if gain > bestFit {
					bestFit, fitFrom, fitTo = gain, i, j
				}
			case gain < 2*need:
				if overFrom < 0 || gain < bestOver {
					bestOver, overFrom, overTo = gain, i, j
				}
			}
		}
	}

	if fitFrom >= 0 {
		return fitFrom, fitTo, true
	}
	if overFrom >= 0 {
		return overFrom, overTo, true
	}
	return -1, -1, false
}

type move struct{ from, to int }

// pickPairMove finds two moves whose combined change lands closest to diff.
// It covers gaps no single move can close, such as trading one day up a
// large step and another down a smaller one. Only strict improvements count.
func pickPairMove(tiers []AmountTier, diff int) ([2]move, bool) {
	var best [2]move
	bestResidual := abs(diff)
	found := false

	for a := range tiers {
		if tiers[a].Count < 1 {
			continue
		}
		for b := range tiers {
			if a == b {
				continue
			}
			first := tiers[b].Amount - tiers[a].Amount
			tiers[a].Count--
			tiers[b].Count++
			for c := range tiers {
				if tiers[c].Count < 1 {
					continue
				}
				for d := range tiers {
					if c == d {
						continue
					}
					residual := abs(diff - first - (tiers[d].Amount - tiers[c].Amount))
					if residual < bestResidual {
						bestResidual = residual
						best = [2]move{{a, b}, {c, d}}
						found = true
					}
				}
			}
			tiers[a].Count++
			tiers[b].Count--
		}
	}
	return best, found
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func dropEmpty(tiers []AmountTier) []AmountTier {
	out := tiers[:0]
	for _, t := range tiers {
		if t.Count > 0 {
			out = append(out, t)
		}
	}
	return out
}

// DayCount sums tier counts.
func DayCount(tiers []AmountTier) int {
	n := 0
	for _, t := range tiers {
		n += t.Count
	}
	return n
}

// Subtotal sums amount*count over tiers.
func Subtotal(tiers []AmountTier) int {
	total := 0
	for _, t := range tiers {
		total += t.Amount * t.Count
	}
	return total
}

// ExpandTiers flattens tiers into one amount per day, in tier order.
func ExpandTiers(tiers []AmountTier) []int {
	amounts := make([]int, 0, DayCount(tiers))
	for _, t := range tiers {
		for range t.Count {
			amounts = append(amounts, t.Amount)
		}
	}
	return amounts
}

// AdjustTier returns a copy of tiers with the count for amount changed by
// delta, clamped at zero. Empty tiers are removed; an unknown amount with a
// positive delta is inserted in ascending order.
func AdjustTier(tiers []AmountTier, amount, delta int) []AmountTier {
	out := make([]AmountTier, 0, len(tiers)+1)
	found := false
	for _, t := range tiers {
		if t.Amount == amount {
			t.Count = max(0, t.Count+delta)
			found = true
		}
		if t.Count > 0 {
			out = append(out, t)
		}
	}
	if found || delta <= 0 || amount <= 0 {
		return out
	}

	added := AmountTier{Amount: amount, Count: delta}
	for i, t := range out {
		if t.Amount > amount {
			out = append(out[:i], append([]AmountTier{added}, out[i:]...)...)
			return out
		}
	}
	return append(out, added)
}
