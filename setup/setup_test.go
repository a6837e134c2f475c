// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package setup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/advent-giving/advent"
	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/models"
)

var testCharities = []models.CharityInput{
	{Name: "Food Bank", Scope: models.ScopeLocal},
	{Name: "Red Cross", Scope: models.ScopeInternational},
	{Name: "Library"},
}

func TestNew_Defaults(t *testing.T) {
	s := New(time.Date(2025, time.March, 3, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, 2025, s.Year)
	assert.Equal(t, advent.Date(2025, time.December, 1), s.StartDate)
	assert.Equal(t, advent.Date(2025, time.December, 25), s.EndDate)
	assert.Equal(t, models.DisplayCalendarView, s.DisplayMode)
	assert.Equal(t, 25, s.DayCount())
	assert.Equal(t, advent.TypeAdvent, s.CalendarType())
}

func TestWithDates(t *testing.T) {
	s := New(time.Now())
	s.Tiers = []allocation.AmountTier{{Amount: 10, Count: 25}}

	s, err := s.WithDates(advent.Date(2026, time.December, 1), advent.Date(2026, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, 2026, s.Year)
	assert.Equal(t, 31, s.DayCount())
	assert.Nil(t, s.Tiers, "tiers are cleared when the day count changes")

	_, err = s.WithDates(advent.Date(2026, time.December, 2), advent.Date(2026, time.December, 1))
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestWithCharities(t *testing.T) {
	s := New(time.Now())

	tests := []struct {
		name      string
		charities []models.CharityInput
		want      error
	}{
		{"valid", testCharities, nil},
		{"valid with grand prize", append(testCharities, models.CharityInput{Name: "Hospital", IsGrandPrize: true, GrandPrizeAmount: 500}), nil},
		{"empty", nil, ErrNoCharities},
		{"only grand prize", []models.CharityInput{{Name: "Hospital", IsGrandPrize: true, GrandPrizeAmount: 500}}, ErrNoCharities},
		{"missing name", []models.CharityInput{{Name: " "}}, ErrCharityName},
		{"bad scope", []models.CharityInput{{Name: "A", Scope: "galactic"}}, ErrInvalidScope},
		{"grand prize without amount", []models.CharityInput{{Name: "A"}, {Name: "B", IsGrandPrize: true}}, ErrGrandPrizeAmount},
		{
			"two grand prizes",
			[]models.CharityInput{
				{Name: "A"},
				{Name: "B", IsGrandPrize: true, GrandPrizeAmount: 100},
				{Name: "C", IsGrandPrize: true, GrandPrizeAmount: 100},
			},
			ErrMultipleGrandPrizes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.WithCharities(tt.charities)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWithBudget(t *testing.T) {
	s, err := New(time.Now()).WithCharities(testCharities)
	require.NoError(t, err)

	got, err := s.WithBudget(5000, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, got.MinAmount, "defaults for a 5000 budget")
	assert.Equal(t, 1000, got.MaxAmount)

	got, err = s.WithBudget(5000, 50, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, got.MinAmount)

	_, err = s.WithBudget(0, 10, 100)
	assert.ErrorIs(t, err, ErrInvalidBudget)
	_, err = s.WithBudget(5000, 500, 50)
	assert.ErrorIs(t, err, ErrInvalidBudget)

	// 25 days at 50 need 1250
	_, err = s.WithBudget(1000, 50, 500)
	assert.ErrorIs(t, err, ErrBudgetTooLow)
}

func TestWithBudget_GrandPrizeReducesFloor(t *testing.T) {
	charities := append([]models.CharityInput{}, testCharities...)
	charities = append(charities, models.CharityInput{Name: "Hospital", IsGrandPrize: true, GrandPrizeAmount: 800})
	s, err := New(time.Now()).WithCharities(charities)
	require.NoError(t, err)

	// 24 ordinary days at 10 need 240 after the 800 grand prize
	_, err = s.WithBudget(1040, 10, 100)
	assert.NoError(t, err)
	_, err = s.WithBudget(1039, 10, 100)
	assert.ErrorIs(t, err, ErrBudgetTooLow)
}

func TestDistribute(t *testing.T) {
	charities := append([]models.CharityInput{}, testCharities...)
	charities = append(charities, models.CharityInput{Name: "Hospital", IsGrandPrize: true, GrandPrizeAmount: 500})

	s, err := New(time.Now()).WithCharities(charities)
	require.NoError(t, err)
	s, err = s.WithBudget(5000, 50, 500)
	require.NoError(t, err)
	s, err = s.WithName("Family Advent")
	require.NoError(t, err)

	s, dist, err := s.Distribute()
	require.NoError(t, err)
	assert.Equal(t, 5000, dist.Total)
	assert.Equal(t, 24, allocation.DayCount(s.Tiers))
	assert.Equal(t, 24, s.OrdinaryDays())
	assert.NoError(t, s.Validate())

	adjusted := s.AdjustTier(50, 1)
	assert.ErrorIs(t, adjusted.Validate(), ErrTierDayCount)
	assert.NoError(t, adjusted.AdjustTier(50, -1).Validate())
}

func TestDistribute_Unreachable(t *testing.T) {
	s, err := New(time.Now()).WithCharities(testCharities)
	require.NoError(t, err)
	// 7 days between 50 and 500 cannot add up to 351
	s, err = s.WithDates(advent.Date(2025, time.December, 19), advent.Date(2025, time.December, 25))
	require.NoError(t, err)
	s, err = s.WithBudget(351, 50, 500)
	require.NoError(t, err)

	s, dist, err := s.Distribute()
	assert.ErrorIs(t, err, allocation.ErrConvergenceExhausted)

	// the closest match is kept for adjustment
	assert.False(t, dist.Converged)
	assert.Equal(t, 350, dist.Total)
	assert.Equal(t, dist.Tiers, s.Tiers)
	assert.Equal(t, 7, allocation.DayCount(s.Tiers))
	assert.NoError(t, s.checkTiers())
}

func TestWithTiers(t *testing.T) {
	s, err := New(time.Now()).WithCharities(testCharities)
	require.NoError(t, err)
	s, err = s.WithDates(advent.Date(2025, time.December, 1), advent.Date(2025, time.December, 3))
	require.NoError(t, err)

	s, err = s.WithTiers([]allocation.AmountTier{{Amount: 50, Count: 1}, {Amount: 10, Count: 1}, {Amount: 50, Count: 1}, {Amount: 25, Count: 0}})
	require.NoError(t, err)
	assert.Equal(t, []allocation.AmountTier{{Amount: 10, Count: 1}, {Amount: 50, Count: 2}}, s.Tiers)

	_, err = s.WithTiers([]allocation.AmountTier{{Amount: 10, Count: 2}})
	assert.ErrorIs(t, err, ErrTierDayCount)
	_, err = s.WithTiers([]allocation.AmountTier{{Amount: -5, Count: 3}})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestValidate(t *testing.T) {
	s := New(time.Now())
	assert.ErrorIs(t, s.Validate(), ErrNameRequired)

	s.Name = "Advent"
	assert.ErrorIs(t, s.Validate(), ErrNoCharities)

	s, err := s.WithCharities(testCharities)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Validate(), ErrInvalidBudget)

	s, err = s.WithBudget(1000, 10, 100)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Validate(), ErrTierDayCount)

	_, err = s.WithDisplayMode("poster")
	assert.ErrorIs(t, err, ErrInvalidDisplayMode)
}
