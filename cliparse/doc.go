// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Each setting comes from the first source that provides it:

 1. CLI flag
 2. Environment variable (main loads .env first, if present)
 3. YAML config file (-c or CONFIG_FILE)
 4. Default

# CLI Flags

	-p            Server port (default 3318)
	-d            Database URL or SQLite path (default advent.db)
	-t            Database type: sqlite (default) or postgres
	-c            YAML config file
	--owner-salt  Owner key salt
	--log-level   debug, info, warn or error (default info)
	--seed        Fixed random seed

# Environment Variables

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CONFIG_FILE     → -c
	OWNER_KEY_SALT  → --owner-salt
	LOG_LEVEL       → --log-level
	RANDOM_SEED     → --seed
	ALLOWED_ORIGINS comma-separated CORS origins

# Config File

	server:
	  port: 3318
	  allowed_origins: ["https://advent.example"]
	database:
	  type: postgres
	  url: ${DATABASE_URL}
	security:
	  owner_key_salt: ${OWNER_KEY_SALT}
	logging:
	  level: debug

# Validation

ParseFlags returns an error if OWNER_KEY_SALT is missing, or if the port,
database type, log level or seed cannot be parsed.
*/
package cliparse
