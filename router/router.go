// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/advent-giving/cliparse"
	"github.com/danielhkuo/advent-giving/handlers"
	"github.com/danielhkuo/advent-giving/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	calendarHandler := handlers.NewCalendarHandler(db, cfg)
	dayHandler := handlers.NewDayHandler(db, cfg)
	planningHandler := handlers.NewPlanningHandler()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Planning (stateless)
	mux.HandleFunc("GET /advent-dates", middleware.WithLogging(planningHandler.AdventDates))
	mux.HandleFunc("POST /distributions/preview", middleware.WithLogging(planningHandler.Preview))

	// Calendar management (owner operations after creation)
	mux.HandleFunc("POST /calendars", middleware.WithLogging(calendarHandler.CreateCalendar))
	mux.HandleFunc("GET /calendars/{id}", middleware.WithLogging(calendarHandler.GetCalendar))
	mux.HandleFunc("DELETE /calendars/{id}", middleware.WithLogging(calendarHandler.DeleteCalendar))
	mux.HandleFunc("PUT /calendars/{id}/distribution", middleware.WithLogging(calendarHandler.RegenerateDistribution))

	// Day actions
	mux.HandleFunc("POST /calendars/{id}/days/{dayID}/reveal", middleware.WithLogging(dayHandler.Reveal))
	mux.HandleFunc("POST /calendars/{id}/days/{dayID}/unreveal", middleware.WithLogging(dayHandler.Unreveal))
	mux.HandleFunc("POST /calendars/{id}/days/{dayID}/paid", middleware.WithLogging(dayHandler.MarkPaid))
	mux.HandleFunc("POST /calendars/{id}/days/{dayID}/reroll-charity", middleware.WithLogging(dayHandler.RerollCharity))
	mux.HandleFunc("POST /calendars/{id}/days/{dayID}/reroll-amount", middleware.WithLogging(dayHandler.RerollAmount))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("advent-giving API v1"))
	})

	return mux
}
