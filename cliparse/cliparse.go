// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = 3318
	DefaultDatabaseType = "sqlite"
	DefaultDatabaseURL  = "advent.db"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	ConfigFile     string
	OwnerKeySalt   string
	LogLevel       slog.Level
	Seed           uint64
	Seeded         bool
	AllowedOrigins []string
}

// FileConfig is the optional YAML layer. ${VAR} references are expanded
// from the environment before parsing.
type FileConfig struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Database struct {
		Type string `yaml:"type"`
		URL  string `yaml:"url"`
	} `yaml:"database"`
	Security struct {
		OwnerKeySalt string `yaml:"owner_key_salt"`
	} `yaml:"security"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Random struct {
		Seed string `yaml:"seed"`
	} `yaml:"random"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return fc, nil
}

// ParseFlags builds the configuration. Each setting is taken from the first
// source that has it: flag, environment, config file, default.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel, seed string

	fs := flag.NewFlagSet("advent-giving", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "YAML config file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OwnerKeySalt, "owner-salt", "", "Owner key salt (prefer env)")

	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&seed, "seed", "", "Fixed random seed for reproducible calendars")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	var file FileConfig
	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		file = fc
	}

	// Fall back to environment variables, then the file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = firstInt(file.Server.Port, DefaultPort)
		}
	}

	cfg.DatabaseURL = firstString(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.Database.URL, DefaultDatabaseURL)
	cfg.DatabaseType = firstString(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.Database.Type, DefaultDatabaseType)
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	cfg.OwnerKeySalt = firstString(cfg.OwnerKeySalt, os.Getenv("OWNER_KEY_SALT"), file.Security.OwnerKeySalt)
	if cfg.OwnerKeySalt == "" {
		return Config{}, errors.New("OWNER_KEY_SALT required")
	}

	logLevel = firstString(logLevel, os.Getenv("LOG_LEVEL"), file.Logging.Level, "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q", logLevel)
	}

	seed = firstString(seed, os.Getenv("RANDOM_SEED"), file.Random.Seed)
	if seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid random seed %q", seed)
		}
		cfg.Seed = n
		cfg.Seeded = true
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	} else {
		cfg.AllowedOrigins = file.Server.AllowedOrigins
	}

	return cfg, nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
