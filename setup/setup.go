// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package setup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/advent-giving/advent"
	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/models"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrInvalidDates        = errors.New("end date must not be before start date")
	ErrInvalidDisplayMode  = errors.New("display_mode must be calendar_view or card_grid")
	ErrNoCharities         = errors.New("at least one regular charity is required")
	ErrCharityName         = errors.New("charity name is required")
	ErrInvalidScope        = errors.New("scope must be international, national, local or empty")
	ErrMultipleGrandPrizes = errors.New("only one charity can be the grand prize")
	ErrGrandPrizeAmount    = errors.New("grand prize amount must be positive")
	ErrInvalidBudget       = errors.New("invalid budget")
	ErrBudgetTooLow        = errors.New("budget is too low for the minimum amount")
	ErrTierDayCount        = errors.New("tiers do not cover every day")
)

type Setup struct {
	Name        string
	Year        int
	StartDate   time.Time
	EndDate     time.Time
	DisplayMode string
	Charities   []models.CharityInput
	TotalBudget int
	MinAmount   int
	MaxAmount   int
	Tiers       []allocation.AmountTier
}

// New returns the default setup: Dec 1 through Dec 25 of now's year.
func New(now time.Time) Setup {
	year := now.Year()
	return Setup{
		Year:        year,
		StartDate:   advent.Date(year, time.December, 1),
		EndDate:     advent.Date(year, time.December, 25),
		DisplayMode: models.DisplayCalendarView,
	}
}

func (s Setup) WithName(name string) (Setup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, ErrNameRequired
	}
	s.Name = name
	return s, nil
}

func (s Setup) WithDisplayMode(mode string) (Setup, error) {
	switch mode {
	case "":
		s.DisplayMode = models.DisplayCalendarView
	case models.DisplayCalendarView, models.DisplayCardGrid:
		s.DisplayMode = mode
	default:
		return s, ErrInvalidDisplayMode
	}
	return s, nil
}

// WithDates sets an inclusive range. The calendar year follows the start date.
func (s Setup) WithDates(start, end time.Time) (Setup, error) {
	if advent.DayCount(start, end) == 0 {
		return s, fmt.Errorf("%w: %s to %s", ErrInvalidDates, advent.FormatDate(start), advent.FormatDate(end))
	}
	s.StartDate = start
	s.EndDate = end
	s.Year = start.Year()
	s.Tiers = nil
	return s, nil
}

// WithCharities replaces the charity list. At most one charity may be the
// grand prize and at least one must be a regular charity.
func (s Setup) WithCharities(charities []models.CharityInput) (Setup, error) {
	grandPrizes := 0
	regular := 0
	for i, c := range charities {
		if strings.TrimSpace(c.Name) == "" {
			return s, fmt.Errorf("charity %d: %w", i+1, ErrCharityName)
		}
		switch c.Scope {
		case "", models.ScopeInternational, models.ScopeNational, models.ScopeLocal:
		default:
			return s, fmt.Errorf("charity %q: %w", c.Name, ErrInvalidScope)
		}
		if !c.IsGrandPrize {
			regular++
			continue
		}
		grandPrizes++
		if c.GrandPrizeAmount <= 0 {
			return s, fmt.Errorf("charity %q: %w", c.Name, ErrGrandPrizeAmount)
		}
	}
	if grandPrizes > 1 {
		return s, ErrMultipleGrandPrizes
	}
	if regular == 0 {
		return s, ErrNoCharities
	}

	s.Charities = append([]models.CharityInput(nil), charities...)
	s.Tiers = nil
	return s, nil
}

// WithBudget sets the budget and per-day range. A zero min or max falls back
// to advent.BudgetDefaults for the total.
func (s Setup) WithBudget(total, minAmount, maxAmount int) (Setup, error) {
	if total <= 0 {
		return s, fmt.Errorf("%w: total must be positive", ErrInvalidBudget)
	}
	defaults := advent.BudgetDefaults(total)
	if minAmount == 0 {
		minAmount = defaults.MinAmount
	}
	if maxAmount == 0 {
		maxAmount = defaults.MaxAmount
	}
	if minAmount < 0 || maxAmount < minAmount {
		return s, fmt.Errorf("%w: min %d, max %d", ErrInvalidBudget, minAmount, maxAmount)
	}

	s.TotalBudget = total
	s.MinAmount = minAmount
	s.MaxAmount = maxAmount
	if err := s.checkBudgetFloor(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Setup) checkBudgetFloor() error {
	grand := 0
	if gp, ok := s.GrandPrize(); ok {
		grand = gp.GrandPrizeAmount
	}
	ordinaryBudget := s.TotalBudget - grand
	need := s.MinAmount * s.OrdinaryDays()
	if ordinaryBudget < need {
		return fmt.Errorf("%w: %s left after the grand prize, %d days need at least %s",
			ErrBudgetTooLow, advent.FormatCurrency(ordinaryBudget), s.OrdinaryDays(), advent.FormatCurrency(need))
	}
	return nil
}

// Distribute generates tiers for the current dates, charities and budget.
// A distribution that misses the budget is still installed and returned as
// the closest match, together with an error wrapping
// allocation.ErrConvergenceExhausted. Callers that persist must refuse it.
func (s Setup) Distribute() (Setup, allocation.Distribution, error) {
	grand := 0
	if gp, ok := s.GrandPrize(); ok {
		grand = gp.GrandPrizeAmount
	}

	dist, err := allocation.GenerateAmountTiers(allocation.TierParams{
		MinAmount:        s.MinAmount,
		MaxAmount:        s.MaxAmount,
		TotalDays:        s.DayCount(),
		TotalBudget:      s.TotalBudget,
		GrandPrizeAmount: grand,
	})
	if err != nil {
		return s, dist, err
	}
	s.Tiers = dist.Tiers
	return s, dist, dist.Check()
}

// AdjustTier changes the day count of one amount. The result may no longer
// cover every day; Validate reports that.
func (s Setup) AdjustTier(amount, delta int) Setup {
	s.Tiers = allocation.AdjustTier(s.Tiers, amount, delta)
	return s
}

// WithTiers installs caller-supplied tiers after checking they cover every
// ordinary day.
func (s Setup) WithTiers(tiers []allocation.AmountTier) (Setup, error) {
	for _, t := range tiers {
		if t.Amount <= 0 || t.Count < 0 {
			return s, fmt.Errorf("%w: tier %d x %d", ErrInvalidBudget, t.Amount, t.Count)
		}
	}
	merged := []allocation.AmountTier{}
	for _, t := range tiers {
		merged = allocation.AdjustTier(merged, t.Amount, t.Count)
	}
	s.Tiers = merged
	if err := s.checkTiers(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Setup) checkTiers() error {
	if got, want := allocation.DayCount(s.Tiers), s.OrdinaryDays(); got != want {
		return fmt.Errorf("%w: tiers cover %d days, want %d", ErrTierDayCount, got, want)
	}
	return nil
}

// Validate checks that the setup is complete enough to create a calendar.
func (s Setup) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if s.DayCount() == 0 {
		return ErrInvalidDates
	}
	if _, err := s.WithCharities(s.Charities); err != nil {
		return err
	}
	if _, err := s.WithBudget(s.TotalBudget, s.MinAmount, s.MaxAmount); err != nil {
		return err
	}
	return s.checkTiers()
}

// DayCount is the number of calendar days, including the grand prize day.
func (s Setup) DayCount() int {
	return advent.DayCount(s.StartDate, s.EndDate)
}

// OrdinaryDays is the number of days the tiers must cover.
func (s Setup) OrdinaryDays() int {
	n := s.DayCount()
	if _, ok := s.GrandPrize(); ok && n > 0 {
		n--
	}
	return n
}

// GrandPrize returns the grand prize charity, if any.
func (s Setup) GrandPrize() (models.CharityInput, bool) {
	for _, c := range s.Charities {
		if c.IsGrandPrize {
			return c, true
		}
	}
	return models.CharityInput{}, false
}

func (s Setup) CalendarType() advent.CalendarType {
	return advent.CalendarTypeOf(s.StartDate, s.EndDate)
}
