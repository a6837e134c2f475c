// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/advent-giving/advent"
	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/middleware"
	"github.com/danielhkuo/advent-giving/models"
	"github.com/danielhkuo/advent-giving/setup"
)

// PlanningHandler serves the stateless setup helpers.
type PlanningHandler struct {
	now func() time.Time
}

func NewPlanningHandler() *PlanningHandler {
	return &PlanningHandler{now: time.Now}
}

// AdventDates handles GET /advent-dates?year=Y
func (h *PlanningHandler) AdventDates(w http.ResponseWriter, r *http.Request) {
	year := h.now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 1 || parsed > 9999 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "year must be a number between 1 and 9999")
			return
		}
		year = parsed
	}

	start, end := advent.ChristianAdventDates(year)
	middleware.JSONResponse(w, http.StatusOK, models.AdventDatesResponse{
		Year:      year,
		StartDate: advent.FormatDate(start),
		EndDate:   advent.FormatDate(end),
		DayCount:  advent.DayCount(start, end),
	})
}

// Preview handles POST /distributions/preview
func (h *PlanningHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s, err := buildSetup(h.now(), req.StartDate, req.EndDate, req.Charities, req.TotalBudget, req.MinAmount, req.MaxAmount)
	if err != nil {
		respondError(w, err, "Failed to build preview")
		return
	}

	// An unmatched budget still previews its closest distribution
	s, dist, err := s.Distribute()
	if err != nil && !errors.Is(err, allocation.ErrConvergenceExhausted) {
		respondError(w, err, "Failed to generate distribution")
		return
	}

	if len(req.Adjustments) > 0 {
		for _, adj := range req.Adjustments {
			s = s.AdjustTier(adj.Amount, adj.Delta)
		}
		dist = redistributed(dist, s.Tiers)
	}

	middleware.JSONResponse(w, http.StatusOK, models.PreviewResponse{
		Distribution:   dist,
		DayCount:       s.DayCount(),
		CalendarType:   string(s.CalendarType()),
		MinAmount:      s.MinAmount,
		MaxAmount:      s.MaxAmount,
		FormattedTotal: advent.FormatCurrency(dist.Total),
	})
}

// redistributed recomputes totals after manual tier changes.
func redistributed(dist allocation.Distribution, tiers []allocation.AmountTier) allocation.Distribution {
	dist.Tiers = tiers
	dist.Subtotal = allocation.Subtotal(tiers)
	dist.Total = dist.Subtotal
	if dist.GrandPrize != nil {
		dist.Total += dist.GrandPrize.Amount
	}
	dist.Converged = dist.Check() == nil
	return dist
}

// buildSetup replays the wizard steps. Empty dates keep the defaults.
func buildSetup(now time.Time, startDate, endDate string, charities []models.CharityInput, total, minAmount, maxAmount int) (setup.Setup, error) {
	s := setup.New(now)

	start, end := s.StartDate, s.EndDate
	if startDate != "" || endDate != "" {
		var err error
		if start, err = advent.ParseDate(startDate); err != nil {
			return s, fmt.Errorf("%w: start_date: %v", setup.ErrInvalidDates, err)
		}
		if end, err = advent.ParseDate(endDate); err != nil {
			return s, fmt.Errorf("%w: end_date: %v", setup.ErrInvalidDates, err)
		}
	}

	s, err := s.WithDates(start, end)
	if err != nil {
		return s, err
	}
	if s, err = s.WithCharities(charities); err != nil {
		return s, err
	}
	return s.WithBudget(total, minAmount, maxAmount)
}
