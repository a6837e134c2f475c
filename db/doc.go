// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open picks the driver from the configured type and pings the server:

	conn, err := db.Open(db.TypeSQLite, "advent.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite goes through modernc.org/sqlite (no cgo). Its DSN gets foreign keys
and a busy timeout, and the pool is limited to one connection. PostgreSQL
uses github.com/lib/pq. Both accept $1-style placeholders.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - calendar: settings, budget and lifecycle state
  - charity: recipients, at most one flagged as grand prize
  - amount_tier: snapshot of the distribution the days were built from
  - calendar_day: one row per date with charity, amount and reveal state

Dates are stored as YYYY-MM-DD text.

# Relationships

	calendar 1──* charity
	calendar 1──* amount_tier
	calendar 1──* calendar_day
	charity  1──* calendar_day

All foreign keys use ON DELETE CASCADE.
*/
package db
