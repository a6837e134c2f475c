// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements run one at a time so the same schema works on both drivers.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var schema = []string{
	// Calendars
	`CREATE TABLE IF NOT EXISTS calendar (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    year INTEGER NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    total_budget INTEGER NOT NULL CHECK (total_budget > 0),
    min_amount INTEGER NOT NULL CHECK (min_amount > 0),
    max_amount INTEGER NOT NULL CHECK (max_amount >= min_amount),
    display_mode TEXT NOT NULL DEFAULT 'calendar_view' CHECK (display_mode IN ('calendar_view', 'card_grid')),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'complete')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,

	// Charities
	`CREATE TABLE IF NOT EXISTS charity (
    id TEXT PRIMARY KEY,
    calendar_id TEXT NOT NULL REFERENCES calendar(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    scope TEXT NOT NULL DEFAULT '' CHECK (scope IN ('', 'international', 'national', 'local')),
    is_grand_prize BOOLEAN NOT NULL DEFAULT FALSE,
    grand_prize_amount INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_charity_calendar_id ON charity(calendar_id)`,

	// Tier snapshot
	`CREATE TABLE IF NOT EXISTS amount_tier (
    id TEXT PRIMARY KEY,
    calendar_id TEXT NOT NULL REFERENCES calendar(id) ON DELETE CASCADE,
    amount INTEGER NOT NULL CHECK (amount > 0),
    count INTEGER NOT NULL CHECK (count > 0),
    UNIQUE (calendar_id, amount)
)`,

	// Days
	`CREATE TABLE IF NOT EXISTS calendar_day (
    id TEXT PRIMARY KEY,
    calendar_id TEXT NOT NULL REFERENCES calendar(id) ON DELETE CASCADE,
    charity_id TEXT NOT NULL REFERENCES charity(id) ON DELETE CASCADE,
    date TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount > 0),
    is_grand_prize BOOLEAN NOT NULL DEFAULT FALSE,
    is_revealed BOOLEAN NOT NULL DEFAULT FALSE,
    is_paid BOOLEAN NOT NULL DEFAULT FALSE,
    charity_rerolls_used INTEGER NOT NULL DEFAULT 0 CHECK (charity_rerolls_used BETWEEN 0 AND 2),
    amount_rerolls_used INTEGER NOT NULL DEFAULT 0 CHECK (amount_rerolls_used BETWEEN 0 AND 2),
    revealed_at TIMESTAMP,
    paid_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (calendar_id, date)
)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_day_calendar_id ON calendar_day(calendar_id)`,
	`CREATE INDEX IF NOT EXISTS idx_calendar_day_unrevealed ON calendar_day(calendar_id, is_revealed)`,
}

// Tables lists every table in dependency order, children first.
var Tables = []string{"calendar_day", "amount_tier", "charity", "calendar"}
