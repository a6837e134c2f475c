// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/advent-giving/allocation"
)

// Calendar status constants
const (
	StatusActive   = "active"
	StatusComplete = "complete"
)

// Display mode constants
const (
	DisplayCalendarView = "calendar_view"
	DisplayCardGrid     = "card_grid"
)

// Charity scope constants. An empty scope is allowed.
const (
	ScopeInternational = "international"
	ScopeNational      = "national"
	ScopeLocal         = "local"
)

// Request types

type CharityInput struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	Notes            string `json:"notes"`
	Scope            string `json:"scope"`
	IsGrandPrize     bool   `json:"is_grand_prize"`
	GrandPrizeAmount int    `json:"grand_prize_amount"`
}

type TierAdjustment struct {
	Amount int `json:"amount"`
	Delta  int `json:"delta"`
}

// Zero min/max fall back to the budget defaults.
type PreviewRequest struct {
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date"`
	Charities   []CharityInput   `json:"charities"`
	TotalBudget int              `json:"total_budget"`
	MinAmount   int              `json:"min_amount"`
	MaxAmount   int              `json:"max_amount"`
	Adjustments []TierAdjustment `json:"adjustments"`
}

// Tiers is optional; when empty the distribution is generated.
type CreateCalendarRequest struct {
	Name        string                  `json:"name"`
	StartDate   string                  `json:"start_date"`
	EndDate     string                  `json:"end_date"`
	DisplayMode string                  `json:"display_mode"`
	Charities   []CharityInput          `json:"charities"`
	TotalBudget int                     `json:"total_budget"`
	MinAmount   int                     `json:"min_amount"`
	MaxAmount   int                     `json:"max_amount"`
	Tiers       []allocation.AmountTier `json:"tiers"`
}

type RegenerateDistributionRequest struct {
	MinAmount int                     `json:"min_amount"`
	MaxAmount int                     `json:"max_amount"`
	Tiers     []allocation.AmountTier `json:"tiers"`
}

// Response types

type PreviewResponse struct {
	Distribution   allocation.Distribution `json:"distribution"`
	DayCount       int                     `json:"day_count"`
	CalendarType   string                  `json:"calendar_type"`
	MinAmount      int                     `json:"min_amount"`
	MaxAmount      int                     `json:"max_amount"`
	FormattedTotal string                  `json:"formatted_total"`
}

type CreateCalendarResponse struct {
	CalendarID string                  `json:"calendar_id"`
	OwnerKey   string                  `json:"owner_key"`
	Tiers      []allocation.AmountTier `json:"tiers"`
}

type RegenerateDistributionResponse struct {
	Tiers     []allocation.AmountTier `json:"tiers"`
	MinAmount int                     `json:"min_amount"`
	MaxAmount int                     `json:"max_amount"`
}

type RerollAmountResponse struct {
	Day         CalendarDay `json:"day"`
	SwappedWith string      `json:"swapped_with"`
}

type AdventDatesResponse struct {
	Year      int    `json:"year"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	DayCount  int    `json:"day_count"`
}

// Domain types

type Calendar struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalBudget int       `json:"total_budget"`
	MinAmount   int       `json:"min_amount"`
	MaxAmount   int       `json:"max_amount"`
	DisplayMode string    `json:"display_mode"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Charity struct {
	ID               string `json:"id"`
	CalendarID       string `json:"calendar_id"`
	Name             string `json:"name"`
	URL              string `json:"url,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Scope            string `json:"scope,omitempty"`
	IsGrandPrize     bool   `json:"is_grand_prize"`
	GrandPrizeAmount int    `json:"grand_prize_amount,omitempty"`
}

// AmountTier is the stored snapshot of a calendar's distribution.
type AmountTier struct {
	ID         string `json:"id"`
	CalendarID string `json:"calendar_id"`
	Amount     int    `json:"amount"`
	Count      int    `json:"count"`
}

type CalendarDay struct {
	ID                 string     `json:"id"`
	CalendarID         string     `json:"calendar_id"`
	CharityID          string     `json:"charity_id,omitempty"`
	Date               string     `json:"date"`
	Amount             int        `json:"amount,omitempty"`
	IsGrandPrize       bool       `json:"is_grand_prize"`
	IsRevealed         bool       `json:"is_revealed"`
	IsPaid             bool       `json:"is_paid"`
	CharityRerollsUsed int        `json:"charity_rerolls_used"`
	AmountRerollsUsed  int        `json:"amount_rerolls_used"`
	RevealedAt         *time.Time `json:"revealed_at,omitempty"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Masked hides the charity and amount of an unrevealed day.
func (d CalendarDay) Masked() CalendarDay {
	if !d.IsRevealed {
		d.CharityID = ""
		d.Amount = 0
	}
	return d
}

// Status returns the allocation state of the day.
func (d CalendarDay) Status() allocation.DayStatus {
	return allocation.DayStatus{
		IsRevealed:         d.IsRevealed,
		IsPaid:             d.IsPaid,
		IsGrandPrize:       d.IsGrandPrize,
		CharityRerollsUsed: d.CharityRerollsUsed,
		AmountRerollsUsed:  d.AmountRerollsUsed,
	}
}

type Progress struct {
	TotalDays      int    `json:"total_days"`
	DaysRevealed   int    `json:"days_revealed"`
	DaysPaid       int    `json:"days_paid"`
	DaysRemaining  int    `json:"days_remaining"`
	TotalBudget    int    `json:"total_budget"`
	TotalRevealed  int    `json:"total_revealed"`
	TotalPaid      int    `json:"total_paid"`
	RevealedUnpaid int    `json:"revealed_unpaid"`
	DonatedLabel   string `json:"donated_label"`
}

type CalendarDetail struct {
	Calendar  Calendar      `json:"calendar"`
	Charities []Charity     `json:"charities"`
	Tiers     []AmountTier  `json:"tiers"`
	Days      []CalendarDay `json:"days"`
	Progress  Progress      `json:"progress"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
