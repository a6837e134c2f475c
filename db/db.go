// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// sqlitePragmas are appended to every SQLite DSN. Foreign keys are off by
// default in SQLite.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch dbType {
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	case TypeSQLite:
		conn, err = sql.Open("sqlite", SQLiteDSN(url))
		if err == nil {
			// one writer at a time
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q (want %s or %s)", dbType, TypePostgres, TypeSQLite)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}

	return conn, nil
}

// SQLiteDSN adds the required pragmas to a file path or file: URI.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	var missing []string
	for _, p := range sqlitePragmas {
		if !strings.Contains(path, p) {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return path
	}
	return path + sep + strings.Join(missing, "&")
}
