// Package config resolves where jobtrack keeps its data. Values come from
// the environment (main honors a .env file when present) and fall back to
// the per-user config directory.
package config

import (
	"os"

	"github.com/sadopc/jobtrack/internal/migrate"
	"github.com/sadopc/jobtrack/internal/store"
)

// Environment variable names.
const (
	EnvDB     = "JOBTRACK_DB"
	EnvLegacy = "JOBTRACK_LEGACY"
)

type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// LegacyPath is the JSON file the previous version kept records in,
	// read only by the migration.
	LegacyPath string
}

// Load resolves the configuration, environment first, per-user defaults
// otherwise.
func Load() (*Config, error) {
	dbPath := os.Getenv(EnvDB)
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	legacyPath := os.Getenv(EnvLegacy)
	if legacyPath == "" {
		p, err := migrate.DefaultLegacyPath()
		if err != nil {
			return nil, err
		}
		legacyPath = p
	}

	return &Config{DBPath: dbPath, LegacyPath: legacyPath}, nil
}
