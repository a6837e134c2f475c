// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/advent-giving/auth"
	"github.com/danielhkuo/advent-giving/cliparse"
	"github.com/danielhkuo/advent-giving/db"
	"github.com/danielhkuo/advent-giving/models"
)

// SetupTestDB creates a fresh SQLite database file with the full schema.
// The file lives in t.TempDir and is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration with a fixed seed.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		OwnerKeySalt: "test-owner-salt",
		Seed:         1,
		Seeded:       true,
	}
}

// TestCalendar describes rows inserted by CreateTestCalendar.
type TestCalendar struct {
	ID           string
	OwnerKey     string
	CharityIDs   []string // regular charities
	GrandPrizeID string
	DayIDs       []string // in date order
}

// CreateTestCalendar inserts an active calendar starting 2025-12-01 with
// one day per amount. Regular charities rotate over the days. A positive
// grandPrizeAmount adds a grand prize charity and a final grand prize day.
func CreateTestCalendar(t *testing.T, conn *sql.DB, cfg cliparse.Config, amounts []int, grandPrizeAmount int) TestCalendar {
	t.Helper()

	tc := TestCalendar{ID: auth.NewID()}
	tc.OwnerKey = auth.GenerateOwnerKey(tc.ID, cfg.OwnerKeySalt)

	total := grandPrizeAmount
	for _, a := range amounts {
		total += a
	}
	days := len(amounts)
	if grandPrizeAmount > 0 {
		days++
	}
	start := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days-1)
	now := time.Now().UTC()

	mustExec(t, conn, `
		INSERT INTO calendar (id, name, year, start_date, end_date, total_budget, min_amount, max_amount,
		                      display_mode, status, created_at, updated_at)
		VALUES ($1, 'Test Calendar', 2025, $2, $3, $4, 1, 5000, $5, $6, $7, $8)
	`, tc.ID, start.Format("2006-01-02"), end.Format("2006-01-02"), total,
		models.DisplayCalendarView, models.StatusActive, now, now)

	for _, name := range []string{"Food Bank", "Red Cross"} {
		id := auth.NewID()
		mustExec(t, conn, `
			INSERT INTO charity (id, calendar_id, name) VALUES ($1, $2, $3)
		`, id, tc.ID, name)
		tc.CharityIDs = append(tc.CharityIDs, id)
	}
	if grandPrizeAmount > 0 {
		tc.GrandPrizeID = auth.NewID()
		mustExec(t, conn, `
			INSERT INTO charity (id, calendar_id, name, is_grand_prize, grand_prize_amount)
			VALUES ($1, $2, 'Hospital', TRUE, $3)
		`, tc.GrandPrizeID, tc.ID, grandPrizeAmount)
	}

	for i, amount := range amounts {
		id := auth.NewID()
		mustExec(t, conn, `
			INSERT INTO calendar_day (id, calendar_id, charity_id, date, amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, tc.ID, tc.CharityIDs[i%len(tc.CharityIDs)], start.AddDate(0, 0, i).Format("2006-01-02"), amount, now)
		tc.DayIDs = append(tc.DayIDs, id)
	}
	if grandPrizeAmount > 0 {
		id := auth.NewID()
		mustExec(t, conn, `
			INSERT INTO calendar_day (id, calendar_id, charity_id, date, amount, is_grand_prize, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		`, id, tc.ID, tc.GrandPrizeID, end.Format("2006-01-02"), grandPrizeAmount, now)
		tc.DayIDs = append(tc.DayIDs, id)
	}

	return tc
}

// RevealTestDay marks a day revealed without going through a handler.
func RevealTestDay(t *testing.T, conn *sql.DB, dayID string) {
	t.Helper()
	mustExec(t, conn, `UPDATE calendar_day SET is_revealed = TRUE, revealed_at = $1 WHERE id = $2`, time.Now().UTC(), dayID)
}

// DayAmount returns the stored amount of a day.
func DayAmount(t *testing.T, conn *sql.DB, dayID string) int {
	t.Helper()
	var amount int
	if err := conn.QueryRow(`SELECT amount FROM calendar_day WHERE id = $1`, dayID).Scan(&amount); err != nil {
		t.Fatalf("Failed to read day %s: %v", dayID, err)
	}
	return amount
}

// CalendarTotal sums the amounts of all days of a calendar.
func CalendarTotal(t *testing.T, conn *sql.DB, calendarID string) int {
	t.Helper()
	var total int
	if err := conn.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM calendar_day WHERE calendar_id = $1`, calendarID).Scan(&total); err != nil {
		t.Fatalf("Failed to sum calendar %s: %v", calendarID, err)
	}
	return total
}

func mustExec(t *testing.T, conn *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := conn.Exec(query, args...); err != nil {
		t.Fatalf("Failed to seed test data: %v", err)
	}
}

// DayPath builds the URL of a day action.
func DayPath(calendarID, dayID, action string) string {
	return fmt.Sprintf("/calendars/%s/days/%s/%s", calendarID, dayID, action)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// OwnerHeaders returns the header map for owner operations.
func OwnerHeaders(ownerKey string) map[string]string {
	return map[string]string{"X-Owner-Key": ownerKey}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
