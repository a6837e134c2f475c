// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the advent-giving API server.

advent-giving plans a charitable advent calendar: a budget is split into
per-day donation amounts, each day is assigned a charity, and the owner
reveals one day at a time, marking it paid once the donation is made.

# Starting the Server

With no configuration the server uses a local SQLite file:

	go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

A .env file in the working directory is loaded first if present.

# Configuration

Flags override environment variables, which override the YAML file
given with -c, which overrides the defaults:

  - PORT (-p): server port (default 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default sqlite)
  - DATABASE_URL (-d): DSN or SQLite path (default advent.db)
  - OWNER_KEY_SALT (--owner-salt): secret for owner key HMAC (required)
  - LOG_LEVEL (--log-level): debug, info, warn or error
  - RANDOM_SEED (--seed): fixed random seed, for demos and tests
  - ALLOWED_ORIGINS: comma separated CORS origins

# Architecture

  - allocation: tier generation, day assignment, rerolls, day lifecycle
  - advent: date ranges, advent dates, budget defaults, currency format
  - setup: the creation wizard as an immutable value
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request, response and record types
  - auth: IDs and owner keys
  - db: connection and schema
  - cliparse: configuration parsing
*/
package main
