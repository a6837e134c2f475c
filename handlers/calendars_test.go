// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/advent-giving/allocation"
	"github.com/danielhkuo/advent-giving/auth"
	"github.com/danielhkuo/advent-giving/models"
	"github.com/danielhkuo/advent-giving/testutil"
)

func validCreateRequest() models.CreateCalendarRequest {
	return models.CreateCalendarRequest{
		Name:      "Family Advent",
		StartDate: "2025-12-01",
		EndDate:   "2025-12-25",
		Charities: []models.CharityInput{
			{Name: "Food Bank", Scope: models.ScopeLocal},
			{Name: "Red Cross", Scope: models.ScopeInternational},
			{Name: "Shelter"},
		},
		TotalBudget: 5000,
		MinAmount:   50,
		MaxAmount:   500,
	}
}

func createCalendar(t *testing.T, h *CalendarHandler, req models.CreateCalendarRequest) models.CreateCalendarResponse {
	t.Helper()
	w := httptest.NewRecorder()
	h.CreateCalendar(w, testutil.MakeRequest("POST", "/calendars", req, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateCalendarResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func TestCreateCalendar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	resp := createCalendar(t, h, validCreateRequest())

	if resp.CalendarID == "" {
		t.Fatal("Expected calendar ID")
	}
	if err := auth.ValidateOwnerKey(resp.CalendarID, resp.OwnerKey, cfg.OwnerKeySalt); err != nil {
		t.Errorf("Owner key does not validate: %v", err)
	}
	if got := allocation.DayCount(resp.Tiers); got != 25 {
		t.Errorf("Expected tiers to cover 25 days, got %d", got)
	}

	var days, tiers int
	db.QueryRow(`SELECT COUNT(*) FROM calendar_day WHERE calendar_id = $1`, resp.CalendarID).Scan(&days)
	db.QueryRow(`SELECT COUNT(*) FROM amount_tier WHERE calendar_id = $1`, resp.CalendarID).Scan(&tiers)
	if days != 25 {
		t.Errorf("Expected 25 days, got %d", days)
	}
	if tiers != len(resp.Tiers) {
		t.Errorf("Expected %d stored tiers, got %d", len(resp.Tiers), tiers)
	}
	if total := testutil.CalendarTotal(t, db, resp.CalendarID); total != 5000 {
		t.Errorf("Expected day amounts to sum to 5000, got %d", total)
	}

	var status string
	db.QueryRow(`SELECT status FROM calendar WHERE id = $1`, resp.CalendarID).Scan(&status)
	if status != models.StatusActive {
		t.Errorf("Expected status %s, got %s", models.StatusActive, status)
	}
}

func TestCreateCalendarWithGrandPrize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewCalendarHandler(db, testutil.GetTestConfig())

	req := validCreateRequest()
	req.Charities = append(req.Charities, models.CharityInput{
		Name: "Children's Hospital", IsGrandPrize: true, GrandPrizeAmount: 500,
	})
	resp := createCalendar(t, h, req)

	if got := allocation.DayCount(resp.Tiers); got != 24 {
		t.Errorf("Expected tiers to cover 24 ordinary days, got %d", got)
	}

	var grandDays, grandAmount int
	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM calendar_day
		WHERE calendar_id = $1 AND is_grand_prize = TRUE
	`, resp.CalendarID).Scan(&grandDays, &grandAmount)
	if err != nil {
		t.Fatalf("Failed to query grand prize days: %v", err)
	}
	if grandDays != 1 || grandAmount != 500 {
		t.Errorf("Expected one grand prize day of 500, got %d days totalling %d", grandDays, grandAmount)
	}

	var strays int
	db.QueryRow(`
		SELECT COUNT(*) FROM calendar_day d JOIN charity c ON c.id = d.charity_id
		WHERE d.calendar_id = $1 AND d.is_grand_prize = FALSE AND c.is_grand_prize = TRUE
	`, resp.CalendarID).Scan(&strays)
	if strays != 0 {
		t.Errorf("Grand prize charity assigned to %d ordinary days", strays)
	}
	if total := testutil.CalendarTotal(t, db, resp.CalendarID); total != 5000 {
		t.Errorf("Expected total 5000, got %d", total)
	}
}

func TestCreateCalendarWithTiers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewCalendarHandler(db, testutil.GetTestConfig())

	req := validCreateRequest()
	req.EndDate = "2025-12-04"
	req.TotalBudget = 400
	req.Tiers = []allocation.AmountTier{{Amount: 100, Count: 2}, {Amount: 50, Count: 1}, {Amount: 150, Count: 1}}
	resp := createCalendar(t, h, req)

	want := []allocation.AmountTier{{Amount: 50, Count: 1}, {Amount: 100, Count: 2}, {Amount: 150, Count: 1}}
	if len(resp.Tiers) != len(want) {
		t.Fatalf("Expected tiers %v, got %v", want, resp.Tiers)
	}
	for i := range want {
		if resp.Tiers[i] != want[i] {
			t.Errorf("Tier %d: expected %v, got %v", i, want[i], resp.Tiers[i])
		}
	}
	if total := testutil.CalendarTotal(t, db, resp.CalendarID); total != 400 {
		t.Errorf("Expected total 400, got %d", total)
	}
}

func TestCreateCalendarValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewCalendarHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name       string
		modify     func(*models.CreateCalendarRequest)
		wantStatus int
	}{
		{"missing name", func(r *models.CreateCalendarRequest) { r.Name = "  " }, http.StatusBadRequest},
		{"end before start", func(r *models.CreateCalendarRequest) { r.EndDate = "2025-11-30" }, http.StatusBadRequest},
		{"bad date", func(r *models.CreateCalendarRequest) { r.StartDate = "December 1st" }, http.StatusBadRequest},
		{"no charities", func(r *models.CreateCalendarRequest) { r.Charities = nil }, http.StatusBadRequest},
		{"only a grand prize", func(r *models.CreateCalendarRequest) {
			r.Charities = []models.CharityInput{{Name: "Hospital", IsGrandPrize: true, GrandPrizeAmount: 500}}
		}, http.StatusBadRequest},
		{"two grand prizes", func(r *models.CreateCalendarRequest) {
			r.Charities = append(r.Charities,
				models.CharityInput{Name: "Hospital", IsGrandPrize: true, GrandPrizeAmount: 500},
				models.CharityInput{Name: "Library", IsGrandPrize: true, GrandPrizeAmount: 300},
			)
		}, http.StatusBadRequest},
		{"grand prize without amount", func(r *models.CreateCalendarRequest) {
			r.Charities = append(r.Charities, models.CharityInput{Name: "Hospital", IsGrandPrize: true})
		}, http.StatusBadRequest},
		{"unknown scope", func(r *models.CreateCalendarRequest) { r.Charities[0].Scope = "galactic" }, http.StatusBadRequest},
		{"blank charity name", func(r *models.CreateCalendarRequest) { r.Charities[1].Name = "" }, http.StatusBadRequest},
		{"zero budget", func(r *models.CreateCalendarRequest) { r.TotalBudget = 0 }, http.StatusBadRequest},
		{"budget below minimum", func(r *models.CreateCalendarRequest) { r.TotalBudget = 1000 }, http.StatusBadRequest},
		{"max below min", func(r *models.CreateCalendarRequest) { r.MaxAmount = 25 }, http.StatusBadRequest},
		{"bad display mode", func(r *models.CreateCalendarRequest) { r.DisplayMode = "poster" }, http.StatusBadRequest},
		{"tiers miss a day", func(r *models.CreateCalendarRequest) {
			r.Tiers = []allocation.AmountTier{{Amount: 200, Count: 24}}
		}, http.StatusBadRequest},
		{"budget cannot be matched", func(r *models.CreateCalendarRequest) { r.TotalBudget = 1255 }, http.StatusUnprocessableEntity},
		{"no amounts in range", func(r *models.CreateCalendarRequest) {
			r.EndDate = "2025-12-10"
			r.TotalBudget = 80
			r.MinAmount = 6
			r.MaxAmount = 9
		}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.modify(&req)

			w := httptest.NewRecorder()
			h.CreateCalendar(w, testutil.MakeRequest("POST", "/calendars", req, nil))
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}

	var count int
	db.QueryRow(`SELECT COUNT(*) FROM calendar`).Scan(&count)
	if count != 0 {
		t.Errorf("Rejected requests left %d calendars behind", count)
	}
}

func TestCreateCalendarInvalidJSON(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewCalendarHandler(db, testutil.GetTestConfig())

	req := httptest.NewRequest("POST", "/calendars", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.CreateCalendar(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func getCalendarRequest(calendarID, ownerKey string) *http.Request {
	req := testutil.MakeRequest("GET", "/calendars/"+calendarID, nil, testutil.OwnerHeaders(ownerKey))
	req.SetPathValue("id", calendarID)
	return req
}

func TestGetCalendar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	tc := testutil.CreateTestCalendar(t, db, cfg, []int{10, 20, 30, 40}, 0)
	testutil.RevealTestDay(t, db, tc.DayIDs[0])

	w := httptest.NewRecorder()
	h.GetCalendar(w, getCalendarRequest(tc.ID, tc.OwnerKey))
	testutil.AssertStatus(t, w, http.StatusOK)

	var detail models.CalendarDetail
	testutil.AssertJSON(t, w, &detail)

	if detail.Calendar.ID != tc.ID {
		t.Errorf("Expected calendar %s, got %s", tc.ID, detail.Calendar.ID)
	}
	if len(detail.Charities) != 2 {
		t.Errorf("Expected 2 charities, got %d", len(detail.Charities))
	}
	if len(detail.Days) != 4 {
		t.Fatalf("Expected 4 days, got %d", len(detail.Days))
	}

	revealed := detail.Days[0]
	if !revealed.IsRevealed || revealed.Amount != 10 || revealed.CharityID != tc.CharityIDs[0] {
		t.Errorf("Revealed day should be visible, got %+v", revealed)
	}
	for _, d := range detail.Days[1:] {
		if d.Amount != 0 || d.CharityID != "" {
			t.Errorf("Hidden day %s leaked amount %d charity %q", d.Date, d.Amount, d.CharityID)
		}
	}

	p := detail.Progress
	if p.TotalDays != 4 || p.DaysRevealed != 1 || p.DaysRemaining != 3 || p.TotalRevealed != 10 || p.TotalBudget != 100 {
		t.Errorf("Unexpected progress %+v", p)
	}
	if p.DonatedLabel != "Donated: $0 of $100" {
		t.Errorf("Unexpected label %q", p.DonatedLabel)
	}
}

func TestGetCalendarAuth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	tc := testutil.CreateTestCalendar(t, db, cfg, []int{10, 20}, 0)
	missing := "no-such-calendar"

	tests := []struct {
		name       string
		calendarID string
		ownerKey   string
		wantStatus int
	}{
		{"valid key", tc.ID, tc.OwnerKey, http.StatusOK},
		{"missing key", tc.ID, "", http.StatusUnauthorized},
		{"wrong key", tc.ID, "wrong-key", http.StatusUnauthorized},
		{"key for another calendar", tc.ID, auth.GenerateOwnerKey(missing, cfg.OwnerKeySalt), http.StatusUnauthorized},
		{"unknown calendar", missing, auth.GenerateOwnerKey(missing, cfg.OwnerKeySalt), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.GetCalendar(w, getCalendarRequest(tt.calendarID, tt.ownerKey))
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestDeleteCalendar(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	tc := testutil.CreateTestCalendar(t, db, cfg, []int{10, 20, 30}, 50)

	del := func(key string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/calendars/"+tc.ID, nil, testutil.OwnerHeaders(key))
		req.SetPathValue("id", tc.ID)
		w := httptest.NewRecorder()
		h.DeleteCalendar(w, req)
		return w
	}

	testutil.AssertStatus(t, del("wrong-key"), http.StatusUnauthorized)
	testutil.AssertStatus(t, del(tc.OwnerKey), http.StatusNoContent)

	var remaining int
	db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM calendar_day WHERE calendar_id = $1)
		     + (SELECT COUNT(*) FROM charity WHERE calendar_id = $2)
		     + (SELECT COUNT(*) FROM calendar WHERE id = $3)
	`, tc.ID, tc.ID, tc.ID).Scan(&remaining)
	if remaining != 0 {
		t.Errorf("Expected every row removed, %d remain", remaining)
	}

	testutil.AssertStatus(t, del(tc.OwnerKey), http.StatusNotFound)
}

func regenerateRequest(calendarID, ownerKey string, body models.RegenerateDistributionRequest) *http.Request {
	req := testutil.MakeRequest("PUT", "/calendars/"+calendarID+"/distribution", body, testutil.OwnerHeaders(ownerKey))
	req.SetPathValue("id", calendarID)
	return req
}

func TestRegenerateDistribution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	created := createCalendar(t, h, validCreateRequest())

	w := httptest.NewRecorder()
	h.RegenerateDistribution(w, regenerateRequest(created.CalendarID, created.OwnerKey, models.RegenerateDistributionRequest{}))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RegenerateDistributionResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.MinAmount != 50 || resp.MaxAmount != 500 {
		t.Errorf("Expected stored range 50-500 to be kept, got %d-%d", resp.MinAmount, resp.MaxAmount)
	}
	if got := allocation.DayCount(resp.Tiers); got != 25 {
		t.Errorf("Expected 25 days in tiers, got %d", got)
	}
	if total := testutil.CalendarTotal(t, db, created.CalendarID); total != 5000 {
		t.Errorf("Expected total 5000 after regenerate, got %d", total)
	}
}

func TestRegenerateDistributionWithTiers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	tc := testutil.CreateTestCalendar(t, db, cfg, []int{10, 20, 30, 40}, 50)

	body := models.RegenerateDistributionRequest{
		Tiers: []allocation.AmountTier{{Amount: 40, Count: 2}, {Amount: 10, Count: 2}},
	}
	w := httptest.NewRecorder()
	h.RegenerateDistribution(w, regenerateRequest(tc.ID, tc.OwnerKey, body))
	testutil.AssertStatus(t, w, http.StatusOK)

	if total := testutil.CalendarTotal(t, db, tc.ID); total != 150 {
		t.Errorf("Expected total 150, got %d", total)
	}
	if amount := testutil.DayAmount(t, db, tc.DayIDs[4]); amount != 50 {
		t.Errorf("Grand prize day changed to %d", amount)
	}

	var tiers int
	db.QueryRow(`SELECT COUNT(*) FROM amount_tier WHERE calendar_id = $1`, tc.ID).Scan(&tiers)
	if tiers != 2 {
		t.Errorf("Expected 2 stored tiers, got %d", tiers)
	}

	body.Tiers = []allocation.AmountTier{{Amount: 40, Count: 3}}
	w = httptest.NewRecorder()
	h.RegenerateDistribution(w, regenerateRequest(tc.ID, tc.OwnerKey, body))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestRegenerateDistributionUnmatchedBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	created := createCalendar(t, h, validCreateRequest())
	before := make(map[string]int)
	rows, err := db.Query(`SELECT id, amount FROM calendar_day WHERE calendar_id = $1`, created.CalendarID)
	if err != nil {
		t.Fatalf("Failed to read days: %v", err)
	}
	for rows.Next() {
		var id string
		var amount int
		rows.Scan(&id, &amount)
		before[id] = amount
	}
	rows.Close()

	// 25 days of 150 can only reach 3750
	body := models.RegenerateDistributionRequest{MinAmount: 150, MaxAmount: 150}
	w := httptest.NewRecorder()
	h.RegenerateDistribution(w, regenerateRequest(created.CalendarID, created.OwnerKey, body))
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	for id, amount := range before {
		if got := testutil.DayAmount(t, db, id); got != amount {
			t.Errorf("Day %s changed from %d to %d", id, amount, got)
		}
	}
}

func TestRegenerateDistributionAfterReveal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewCalendarHandler(db, cfg)

	tc := testutil.CreateTestCalendar(t, db, cfg, []int{10, 20, 30, 40}, 0)
	testutil.RevealTestDay(t, db, tc.DayIDs[2])

	body := models.RegenerateDistributionRequest{
		Tiers: []allocation.AmountTier{{Amount: 25, Count: 4}},
	}
	w := httptest.NewRecorder()
	h.RegenerateDistribution(w, regenerateRequest(tc.ID, tc.OwnerKey, body))
	testutil.AssertStatus(t, w, http.StatusConflict)

	for i, want := range []int{10, 20, 30, 40} {
		if got := testutil.DayAmount(t, db, tc.DayIDs[i]); got != want {
			t.Errorf("Day %d changed from %d to %d", i, want, got)
		}
	}
}
