// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/advent-giving/advent"
	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/auth"
	"github.com/danielhkuo/advent-giving/cliparse"
	"github.com/danielhkuo/advent-giving/middleware"
	"github.com/danielhkuo/advent-giving/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// newRNG returns a seeded source when the server was started with a seed.
func newRNG(cfg cliparse.Config) allocation.RNG {
	if cfg.Seeded {
		return allocation.NewLockedRNG(cfg.Seed)
	}
	return allocation.DefaultRNG()
}

// authorizeOwner checks the X-Owner-Key header and writes 401 on failure.
func authorizeOwner(w http.ResponseWriter, r *http.Request, calendarID, salt string) bool {
	ownerKey := r.Header.Get("X-Owner-Key")
	if err := auth.ValidateOwnerKey(calendarID, ownerKey, salt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid owner key")
		return false
	}
	return true
}

func loadCalendar(q querier, calendarID string) (models.Calendar, error) {
	var c models.Calendar
	err := q.QueryRow(`
		SELECT id, name, year, start_date, end_date, total_budget, min_amount, max_amount,
		       display_mode, status, created_at, updated_at
		FROM calendar
		WHERE id = $1
	`, calendarID).Scan(&c.ID, &c.Name, &c.Year, &c.StartDate, &c.EndDate, &c.TotalBudget,
		&c.MinAmount, &c.MaxAmount, &c.DisplayMode, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return c, errCalendarNotFound
	}
	if err != nil {
		return c, fmt.Errorf("load calendar %s: %w", calendarID, err)
	}
	return c, nil
}

func loadCharities(q querier, calendarID string) ([]models.Charity, error) {
	rows, err := q.Query(`
		SELECT id, calendar_id, name, url, notes, scope, is_grand_prize, grand_prize_amount
		FROM charity
		WHERE calendar_id = $1
		ORDER BY name, id
	`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("load charities: %w", err)
	}
	defer rows.Close()

	charities := []models.Charity{}
	for rows.Next() {
		var c models.Charity
		if err := rows.Scan(&c.ID, &c.CalendarID, &c.Name, &c.URL, &c.Notes, &c.Scope,
			&c.IsGrandPrize, &c.GrandPrizeAmount); err != nil {
			return nil, fmt.Errorf("scan charity: %w", err)
		}
		charities = append(charities, c)
	}
	return charities, rows.Err()
}

func loadTiers(q querier, calendarID string) ([]models.AmountTier, error) {
	rows, err := q.Query(`
		SELECT id, calendar_id, amount, count
		FROM amount_tier
		WHERE calendar_id = $1
		ORDER BY amount
	`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("load tiers: %w", err)
	}
	defer rows.Close()

	tiers := []models.AmountTier{}
	for rows.Next() {
		var t models.AmountTier
		if err := rows.Scan(&t.ID, &t.CalendarID, &t.Amount, &t.Count); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

const dayColumns = `id, calendar_id, charity_id, date, amount, is_grand_prize, is_revealed, is_paid,
	charity_rerolls_used, amount_rerolls_used, revealed_at, paid_at, created_at`

func scanDay(s scanner) (models.CalendarDay, error) {
	var d models.CalendarDay
	var revealedAt, paidAt sql.NullTime
	err := s.Scan(&d.ID, &d.CalendarID, &d.CharityID, &d.Date, &d.Amount, &d.IsGrandPrize,
		&d.IsRevealed, &d.IsPaid, &d.CharityRerollsUsed, &d.AmountRerollsUsed,
		&revealedAt, &paidAt, &d.CreatedAt)
	if err != nil {
		return d, err
	}
	if revealedAt.Valid {
		d.RevealedAt = &revealedAt.Time
	}
	if paidAt.Valid {
		d.PaidAt = &paidAt.Time
	}
	return d, nil
}

func loadDays(q querier, calendarID string) ([]models.CalendarDay, error) {
	rows, err := q.Query(`SELECT `+dayColumns+` FROM calendar_day WHERE calendar_id = $1 ORDER BY date`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("load days: %w", err)
	}
	defer rows.Close()

	days := []models.CalendarDay{}
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func loadDay(q querier, calendarID, dayID string) (models.CalendarDay, error) {
	row := q.QueryRow(`SELECT `+dayColumns+` FROM calendar_day WHERE id = $1 AND calendar_id = $2`, dayID, calendarID)
	d, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return d, errDayNotFound
	}
	if err != nil {
		return d, fmt.Errorf("load day %s: %w", dayID, err)
	}
	return d, nil
}

// insertTiers writes the tier snapshot. Callers delete the old one first.
func insertTiers(q querier, calendarID string, tiers []allocation.AmountTier) ([]models.AmountTier, error) {
	out := make([]models.AmountTier, 0, len(tiers))
	for _, t := range tiers {
		rec := models.AmountTier{ID: auth.NewID(), CalendarID: calendarID, Amount: t.Amount, Count: t.Count}
		if _, err := q.Exec(`
			INSERT INTO amount_tier (id, calendar_id, amount, count)
			VALUES ($1, $2, $3, $4)
		`, rec.ID, rec.CalendarID, rec.Amount, rec.Count); err != nil {
			return nil, fmt.Errorf("insert tier %d: %w", t.Amount, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// expectOneRow turns a guarded UPDATE that matched nothing into errStaleDay.
func expectOneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return errStaleDay
	}
	return nil
}

func buildProgress(budget int, days []models.CalendarDay) models.Progress {
	p := models.Progress{TotalDays: len(days), TotalBudget: budget}
	for _, d := range days {
		if d.IsRevealed {
			p.DaysRevealed++
			p.TotalRevealed += d.Amount
		}
		if d.IsPaid {
			p.DaysPaid++
			p.TotalPaid += d.Amount
		}
	}
	p.DaysRemaining = p.TotalDays - p.DaysRevealed
	p.RevealedUnpaid = p.TotalRevealed - p.TotalPaid
	p.DonatedLabel = fmt.Sprintf("Donated: %s of %s", advent.FormatCurrency(p.TotalPaid), advent.FormatCurrency(budget))
	return p
}
