// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/cliparse"
	"github.com/danielhkuo/advent-giving/middleware"
	"github.com/danielhkuo/advent-giving/models"
)

// DayHandler serves the per-day actions. Every write is guarded by the
// state it was computed from, so a concurrent change turns into a 409
// instead of a lost update.
type DayHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	rng allocation.RNG
	now func() time.Time
}

func NewDayHandler(db *sql.DB, cfg cliparse.Config) *DayHandler {
	return &DayHandler{db: db, cfg: cfg, rng: newRNG(cfg), now: time.Now}
}

// loadOwnedDay checks the owner key and loads the day from the path.
func (h *DayHandler) loadOwnedDay(w http.ResponseWriter, r *http.Request) (models.CalendarDay, bool) {
	calendarID := r.PathValue("id")
	dayID := r.PathValue("dayID")
	if !authorizeOwner(w, r, calendarID, h.cfg.OwnerKeySalt) {
		return models.CalendarDay{}, false
	}

	day, err := loadDay(h.db, calendarID, dayID)
	if err != nil {
		respondError(w, err, "Failed to load day")
		return day, false
	}
	return day, true
}

func (h *DayHandler) respondDay(w http.ResponseWriter, calendarID, dayID string) {
	day, err := loadDay(h.db, calendarID, dayID)
	if err != nil {
		respondError(w, err, "Failed to load day")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, day.Masked())
}

// Reveal handles POST /calendars/{id}/days/{dayID}/reveal
func (h *DayHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	day, ok := h.loadOwnedDay(w, r)
	if !ok {
		return
	}
	if _, err := day.Status().Reveal(); err != nil {
		respondError(w, err, "Failed to reveal day")
		return
	}

	err := expectOneRow(h.db.Exec(`
		UPDATE calendar_day SET is_revealed = TRUE, revealed_at = $1
		WHERE id = $2 AND is_revealed = FALSE AND is_paid = FALSE
	`, h.now().UTC(), day.ID))
	if err != nil {
		respondError(w, err, "Failed to reveal day")
		return
	}

	slog.Info("day revealed", "calendar_id", day.CalendarID, "day_id", day.ID, "date", day.Date)
	h.respondDay(w, day.CalendarID, day.ID)
}

// Unreveal handles POST /calendars/{id}/days/{dayID}/unreveal
func (h *DayHandler) Unreveal(w http.ResponseWriter, r *http.Request) {
	day, ok := h.loadOwnedDay(w, r)
	if !ok {
		return
	}
	if _, err := day.Status().Unreveal(); err != nil {
		respondError(w, err, "Failed to hide day")
		return
	}

	err := expectOneRow(h.db.Exec(`
		UPDATE calendar_day SET is_revealed = FALSE, revealed_at = NULL
		WHERE id = $1 AND is_revealed = TRUE AND is_paid = FALSE
	`, day.ID))
	if err != nil {
		respondError(w, err, "Failed to hide day")
		return
	}

	slog.Info("day hidden", "calendar_id", day.CalendarID, "day_id", day.ID)
	h.respondDay(w, day.CalendarID, day.ID)
}

// MarkPaid handles POST /calendars/{id}/days/{dayID}/paid
//
// The calendar becomes complete when its last day is paid.
func (h *DayHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	day, ok := h.loadOwnedDay(w, r)
	if !ok {
		return
	}
	if _, err := day.Status().MarkPaid(); err != nil {
		respondError(w, err, "Failed to mark day paid")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := h.now().UTC()
	err = expectOneRow(tx.Exec(`
		UPDATE calendar_day SET is_paid = TRUE, paid_at = $1
		WHERE id = $2 AND is_revealed = TRUE AND is_paid = FALSE
	`, now, day.ID))
	if err != nil {
		respondError(w, err, "Failed to mark day paid")
		return
	}

	var unpaid int
	if err := tx.QueryRow(`
		SELECT COUNT(*) FROM calendar_day WHERE calendar_id = $1 AND is_paid = FALSE
	`, day.CalendarID).Scan(&unpaid); err != nil {
		slog.Error("failed to count unpaid days", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark day paid")
		return
	}
	if unpaid == 0 {
		if _, err := tx.Exec(`
			UPDATE calendar SET status = $1, updated_at = $2 WHERE id = $3
		`, models.StatusComplete, now, day.CalendarID); err != nil {
			slog.Error("failed to complete calendar", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark day paid")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to mark day paid")
		return
	}

	slog.Info("day paid", "calendar_id", day.CalendarID, "day_id", day.ID, "amount", day.Amount, "calendar_complete", unpaid == 0)
	h.respondDay(w, day.CalendarID, day.ID)
}

// RerollCharity handles POST /calendars/{id}/days/{dayID}/reroll-charity
func (h *DayHandler) RerollCharity(w http.ResponseWriter, r *http.Request) {
	day, ok := h.loadOwnedDay(w, r)
	if !ok {
		return
	}
	if _, err := day.Status().UseCharityReroll(); err != nil {
		respondError(w, err, "Failed to reroll charity")
		return
	}

	charities, err := loadCharities(h.db, day.CalendarID)
	if err != nil {
		respondError(w, err, "Failed to reroll charity")
		return
	}
	ids := make([]string, 0, len(charities))
	grandPrizeID := ""
	for _, c := range charities {
		ids = append(ids, c.ID)
		if c.IsGrandPrize {
			grandPrizeID = c.ID
		}
	}

	newCharityID, err := allocation.GetNewCharity(h.rng, day.CharityID, ids, grandPrizeID)
	if err != nil {
		respondError(w, err, "Failed to reroll charity")
		return
	}

	err = expectOneRow(h.db.Exec(`
		UPDATE calendar_day
		SET charity_id = $1, charity_rerolls_used = charity_rerolls_used + 1
		WHERE id = $2 AND charity_id = $3 AND charity_rerolls_used = $4
		  AND is_revealed = TRUE AND is_paid = FALSE AND is_grand_prize = FALSE
	`, newCharityID, day.ID, day.CharityID, day.CharityRerollsUsed))
	if err != nil {
		respondError(w, err, "Failed to reroll charity")
		return
	}

	slog.Info("charity rerolled",
		"calendar_id", day.CalendarID,
		"day_id", day.ID,
		"rerolls_used", day.CharityRerollsUsed+1,
	)
	h.respondDay(w, day.CalendarID, day.ID)
}

// RerollAmount handles POST /calendars/{id}/days/{dayID}/reroll-amount
//
// The day trades amounts with a random unrevealed day, so the calendar
// total never changes. Both rows are written in one transaction.
func (h *DayHandler) RerollAmount(w http.ResponseWriter, r *http.Request) {
	day, ok := h.loadOwnedDay(w, r)
	if !ok {
		return
	}
	if _, err := day.Status().UseAmountReroll(); err != nil {
		respondError(w, err, "Failed to reroll amount")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	unrevealed, err := loadSwapCandidates(tx, day.CalendarID)
	if err != nil {
		respondError(w, err, "Failed to reroll amount")
		return
	}

	swap, err := allocation.SwapAmounts(h.rng, day.ID, day.Amount, unrevealed)
	if err != nil {
		respondError(w, err, "Failed to reroll amount")
		return
	}

	err = expectOneRow(tx.Exec(`
		UPDATE calendar_day
		SET amount = $1, amount_rerolls_used = amount_rerolls_used + 1
		WHERE id = $2 AND amount = $3 AND amount_rerolls_used = $4
		  AND is_revealed = TRUE AND is_paid = FALSE AND is_grand_prize = FALSE
	`, swap.NewAmount, day.ID, day.Amount, day.AmountRerollsUsed))
	if err != nil {
		respondError(w, err, "Failed to reroll amount")
		return
	}

	err = expectOneRow(tx.Exec(`
		UPDATE calendar_day SET amount = $1
		WHERE id = $2 AND amount = $3 AND is_revealed = FALSE
	`, swap.TargetNewAmount, swap.TargetDayID, swap.NewAmount))
	if err != nil {
		respondError(w, err, "Failed to reroll amount")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reroll amount")
		return
	}

	slog.Info("amount rerolled",
		"calendar_id", day.CalendarID,
		"day_id", day.ID,
		"swapped_with", swap.TargetDayID,
		"rerolls_used", day.AmountRerollsUsed+1,
	)

	updated, err := loadDay(h.db, day.CalendarID, day.ID)
	if err != nil {
		respondError(w, err, "Failed to load day")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.RerollAmountResponse{
		Day:         updated,
		SwappedWith: swap.TargetDayID,
	})
}

// loadSwapCandidates lists the hidden, ordinary days of a calendar.
func loadSwapCandidates(q querier, calendarID string) ([]allocation.DayAmount, error) {
	rows, err := q.Query(`
		SELECT id, amount FROM calendar_day
		WHERE calendar_id = $1 AND is_revealed = FALSE AND is_paid = FALSE AND is_grand_prize = FALSE
		ORDER BY date
	`, calendarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []allocation.DayAmount
	for rows.Next() {
		var d allocation.DayAmount
		if err := rows.Scan(&d.ID, &d.Amount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
