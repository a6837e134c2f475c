// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/advent-giving/advent"
	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/auth"
	"github.com/danielhkuo/advent-giving/cliparse"
	"github.com/danielhkuo/advent-giving/middleware"
	"github.com/danielhkuo/advent-giving/models"
	"github.com/danielhkuo/advent-giving/setup"
)

type CalendarHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	rng allocation.RNG
	now func() time.Time
}

func NewCalendarHandler(db *sql.DB, cfg cliparse.Config) *CalendarHandler {
	return &CalendarHandler{db: db, cfg: cfg, rng: newRNG(cfg), now: time.Now}
}

// CreateCalendar handles POST /calendars
func (h *CalendarHandler) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCalendarRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s, err := buildSetup(h.now(), req.StartDate, req.EndDate, req.Charities, req.TotalBudget, req.MinAmount, req.MaxAmount)
	if err == nil {
		s, err = s.WithName(req.Name)
	}
	if err == nil {
		s, err = s.WithDisplayMode(req.DisplayMode)
	}
	if err == nil {
		if len(req.Tiers) > 0 {
			s, err = s.WithTiers(req.Tiers)
		} else {
			s, _, err = s.Distribute()
		}
	}
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		respondError(w, err, "Failed to create calendar")
		return
	}

	calendarID := auth.NewID()
	charities, grand := charityRecords(calendarID, s.Charities)

	dates, err := advent.EachDay(s.StartDate, s.EndDate)
	if err != nil {
		respondError(w, err, "Failed to create calendar")
		return
	}

	params := allocation.DayParams{
		Dates:   dates,
		Amounts: allocation.ExpandTiers(s.Tiers),
	}
	for _, c := range charities {
		params.CharityIDs = append(params.CharityIDs, c.ID)
	}
	if grand != nil {
		params.GrandPrizeCharityID = grand.ID
		params.GrandPrizeAmount = grand.GrandPrizeAmount
	}

	assignments, err := allocation.CreateDayAssignments(h.rng, params)
	if err != nil {
		respondError(w, err, "Failed to create calendar")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if err := insertCalendar(tx, calendarID, s, charities, assignments, h.now().UTC()); err != nil {
		slog.Error("failed to insert calendar", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create calendar")
		return
	}
	if _, err := insertTiers(tx, calendarID, s.Tiers); err != nil {
		slog.Error("failed to insert tiers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create calendar")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create calendar")
		return
	}

	slog.Info("calendar created",
		"calendar_id", calendarID,
		"days", len(assignments),
		"budget", s.TotalBudget,
		"type", s.CalendarType(),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCalendarResponse{
		CalendarID: calendarID,
		OwnerKey:   auth.GenerateOwnerKey(calendarID, h.cfg.OwnerKeySalt),
		Tiers:      s.Tiers,
	})
}

// charityRecords assigns IDs and returns the grand prize record, if any.
func charityRecords(calendarID string, inputs []models.CharityInput) ([]models.Charity, *models.Charity) {
	records := make([]models.Charity, len(inputs))
	var grand *models.Charity
	for i, in := range inputs {
		records[i] = models.Charity{
			ID:               auth.NewID(),
			CalendarID:       calendarID,
			Name:             in.Name,
			URL:              in.URL,
			Notes:            in.Notes,
			Scope:            in.Scope,
			IsGrandPrize:     in.IsGrandPrize,
			GrandPrizeAmount: in.GrandPrizeAmount,
		}
		if in.IsGrandPrize {
			grand = &records[i]
		}
	}
	return records, grand
}

func insertCalendar(q querier, calendarID string, s setup.Setup, charities []models.Charity, assignments []allocation.Assignment, now time.Time) error {
	_, err := q.Exec(`
		INSERT INTO calendar (id, name, year, start_date, end_date, total_budget, min_amount, max_amount,
		                      display_mode, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, calendarID, s.Name, s.Year, advent.FormatDate(s.StartDate), advent.FormatDate(s.EndDate),
		s.TotalBudget, s.MinAmount, s.MaxAmount, s.DisplayMode, models.StatusActive, now, now)
	if err != nil {
		return fmt.Errorf("insert calendar: %w", err)
	}

	for _, c := range charities {
		_, err := q.Exec(`
			INSERT INTO charity (id, calendar_id, name, url, notes, scope, is_grand_prize, grand_prize_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, c.ID, c.CalendarID, c.Name, c.URL, c.Notes, c.Scope, c.IsGrandPrize, c.GrandPrizeAmount)
		if err != nil {
			return fmt.Errorf("insert charity %q: %w", c.Name, err)
		}
	}

	for _, a := range assignments {
		_, err := q.Exec(`
			INSERT INTO calendar_day (id, calendar_id, charity_id, date, amount, is_grand_prize, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, auth.NewID(), calendarID, a.CharityID, advent.FormatDate(a.Date), a.Amount, a.IsGrandPrize, now)
		if err != nil {
			return fmt.Errorf("insert day %s: %w", advent.FormatDate(a.Date), err)
		}
	}

	return nil
}

// GetCalendar handles GET /calendars/{id}
func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	calendarID := r.PathValue("id")
	if !authorizeOwner(w, r, calendarID, h.cfg.OwnerKeySalt) {
		return
	}

	cal, err := loadCalendar(h.db, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}
	charities, err := loadCharities(h.db, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}
	tiers, err := loadTiers(h.db, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}
	days, err := loadDays(h.db, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}

	progress := buildProgress(cal.TotalBudget, days)

	// Hidden days keep their surprise
	for i := range days {
		days[i] = days[i].Masked()
	}

	middleware.JSONResponse(w, http.StatusOK, models.CalendarDetail{
		Calendar:  cal,
		Charities: charities,
		Tiers:     tiers,
		Days:      days,
		Progress:  progress,
	})
}

// DeleteCalendar handles DELETE /calendars/{id}
func (h *CalendarHandler) DeleteCalendar(w http.ResponseWriter, r *http.Request) {
	calendarID := r.PathValue("id")
	if !authorizeOwner(w, r, calendarID, h.cfg.OwnerKeySalt) {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM calendar_day WHERE calendar_id = $1`,
		`DELETE FROM amount_tier WHERE calendar_id = $1`,
		`DELETE FROM charity WHERE calendar_id = $1`,
	} {
		if _, err := tx.Exec(stmt, calendarID); err != nil {
			slog.Error("failed to delete calendar children", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete calendar")
			return
		}
	}

	res, err := tx.Exec(`DELETE FROM calendar WHERE id = $1`, calendarID)
	if err != nil {
		slog.Error("failed to delete calendar", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete calendar")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "calendar not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete calendar")
		return
	}

	slog.Info("calendar deleted", "calendar_id", calendarID)
	w.WriteHeader(http.StatusNoContent)
}

// RegenerateDistribution handles PUT /calendars/{id}/distribution
//
// New tiers are generated (or taken from the request) and the amounts are
// reshuffled over every non-grand-prize day. Refused once any day is revealed.
func (h *CalendarHandler) RegenerateDistribution(w http.ResponseWriter, r *http.Request) {
	calendarID := r.PathValue("id")
	if !authorizeOwner(w, r, calendarID, h.cfg.OwnerKeySalt) {
		return
	}

	var req models.RegenerateDistributionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	cal, err := loadCalendar(tx, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}
	charities, err := loadCharities(tx, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}
	days, err := loadDays(tx, calendarID)
	if err != nil {
		respondError(w, err, "Failed to load calendar")
		return
	}

	for _, d := range days {
		if d.IsRevealed || d.IsPaid {
			respondError(w, errCalendarLocked, "Failed to regenerate distribution")
			return
		}
	}

	s, err := storedSetup(cal, charities)
	if err != nil {
		respondError(w, err, "Failed to regenerate distribution")
		return
	}

	minAmount, maxAmount := req.MinAmount, req.MaxAmount
	if minAmount == 0 {
		minAmount = cal.MinAmount
	}
	if maxAmount == 0 {
		maxAmount = cal.MaxAmount
	}
	s, err = s.WithBudget(cal.TotalBudget, minAmount, maxAmount)
	if err == nil {
		if len(req.Tiers) > 0 {
			s, err = s.WithTiers(req.Tiers)
		} else {
			s, _, err = s.Distribute()
		}
	}
	if err != nil {
		respondError(w, err, "Failed to regenerate distribution")
		return
	}

	var ordinary []models.CalendarDay
	for _, d := range days {
		if !d.IsGrandPrize {
			ordinary = append(ordinary, d)
		}
	}
	amounts := allocation.Shuffle(h.rng, allocation.ExpandTiers(s.Tiers))
	if len(amounts) != len(ordinary) {
		respondError(w, fmt.Errorf("%w: %d amounts for %d days", allocation.ErrAmountMismatch, len(amounts), len(ordinary)),
			"Failed to regenerate distribution")
		return
	}

	for i, d := range ordinary {
		err := expectOneRow(tx.Exec(`
			UPDATE calendar_day SET amount = $1
			WHERE id = $2 AND is_revealed = FALSE
		`, amounts[i], d.ID))
		if err != nil {
			respondError(w, err, "Failed to regenerate distribution")
			return
		}
	}

	if _, err := tx.Exec(`DELETE FROM amount_tier WHERE calendar_id = $1`, calendarID); err != nil {
		slog.Error("failed to clear tiers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to regenerate distribution")
		return
	}
	if _, err := insertTiers(tx, calendarID, s.Tiers); err != nil {
		slog.Error("failed to insert tiers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to regenerate distribution")
		return
	}
	if _, err := tx.Exec(`
		UPDATE calendar SET min_amount = $1, max_amount = $2, updated_at = $3
		WHERE id = $4
	`, s.MinAmount, s.MaxAmount, h.now().UTC(), calendarID); err != nil {
		slog.Error("failed to update calendar", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to regenerate distribution")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to regenerate distribution")
		return
	}

	slog.Info("distribution regenerated", "calendar_id", calendarID, "tiers", len(s.Tiers))

	middleware.JSONResponse(w, http.StatusOK, models.RegenerateDistributionResponse{
		Tiers:     s.Tiers,
		MinAmount: s.MinAmount,
		MaxAmount: s.MaxAmount,
	})
}

// storedSetup rebuilds the wizard state of a persisted calendar.
func storedSetup(cal models.Calendar, charities []models.Charity) (setup.Setup, error) {
	start, err := advent.ParseDate(cal.StartDate)
	if err != nil {
		return setup.Setup{}, err
	}
	end, err := advent.ParseDate(cal.EndDate)
	if err != nil {
		return setup.Setup{}, err
	}

	inputs := make([]models.CharityInput, len(charities))
	for i, c := range charities {
		inputs[i] = models.CharityInput{
			Name:             c.Name,
			URL:              c.URL,
			Notes:            c.Notes,
			Scope:            c.Scope,
			IsGrandPrize:     c.IsGrandPrize,
			GrandPrizeAmount: c.GrandPrizeAmount,
		}
	}

	s := setup.New(start)
	s.Name = cal.Name
	s.DisplayMode = cal.DisplayMode
	if s, err = s.WithDates(start, end); err != nil {
		return s, err
	}
	return s.WithCharities(inputs)
}
