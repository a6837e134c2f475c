// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

// DayStatus is the mutable part of a calendar day.
//
//	hidden ──Reveal──▶ revealed ──MarkPaid──▶ paid
//	   ▲                   │
//	   └─────Unreveal──────┘
//
// Rerolls are only allowed while revealed and unpaid, and their counters
// never go down.
type DayStatus struct {
	IsRevealed         bool
	IsPaid             bool
	IsGrandPrize       bool
	CharityRerollsUsed int
	AmountRerollsUsed  int
}

// Reveal moves a hidden day to revealed.
func (s DayStatus) Reveal() (DayStatus, error) {
	if s.IsPaid {
		return s, ErrDayPaid
	}
	if s.IsRevealed {
		return s, ErrDayRevealed
	}
	s.IsRevealed = true
	return s, nil
}

// Unreveal hides a revealed, unpaid day again.
func (s DayStatus) Unreveal() (DayStatus, error) {
	if s.IsPaid {
		return s, ErrDayPaid
	}
	if !s.IsRevealed {
		return s, ErrDayHidden
	}
	s.IsRevealed = false
	return s, nil
}

// MarkPaid locks a revealed day.
func (s DayStatus) MarkPaid() (DayStatus, error) {
	if s.IsPaid {
		return s, ErrDayPaid
	}
	if !s.IsRevealed {
		return s, ErrDayHidden
	}
	s.IsPaid = true
	return s, nil
}

// UseCharityReroll spends one charity reroll.
func (s DayStatus) UseCharityReroll() (DayStatus, error) {
	if err := s.checkRerollable(); err != nil {
		return s, err
	}
	if !CanRerollCharity(s.CharityRerollsUsed, s.IsGrandPrize) {
		return s, ErrRerollLimit
	}
	s.CharityRerollsUsed++
	return s, nil
}

// UseAmountReroll spends one amount reroll.
func (s DayStatus) UseAmountReroll() (DayStatus, error) {
	if err := s.checkRerollable(); err != nil {
		return s, err
	}
	if !CanRerollAmount(s.AmountRerollsUsed, s.IsGrandPrize) {
		return s, ErrRerollLimit
	}
	s.AmountRerollsUsed++
	return s, nil
}

func (s DayStatus) checkRerollable() error {
	switch {
	case s.IsGrandPrize:
		return ErrGrandPrizeLocked
	case s.IsPaid:
		return ErrDayPaid
	case !s.IsRevealed:
		return ErrDayHidden
	}
	return nil
}
