package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Sentinel errors surfaced by store and service operations. Callers match
// them with errors.Is.
var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("duplicate application")
)

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	// The (company, job_title, location) uniqueness rule is enforced by the
	// tracker service at write time, not by a table constraint.
	const ddl = `
	CREATE TABLE IF NOT EXISTS applications (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		company             TEXT NOT NULL,
		job_title           TEXT NOT NULL,
		location            TEXT NOT NULL,
		status              TEXT NOT NULL DEFAULT 'Applied',
		applied_date        TEXT NOT NULL,
		cool_off_start_type TEXT NOT NULL DEFAULT 'application',
		cool_off_ends       TEXT NOT NULL,
		created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_applications_company    ON applications(company);
	CREATE INDEX IF NOT EXISTS idx_applications_job_title  ON applications(job_title);
	CREATE INDEX IF NOT EXISTS idx_applications_location   ON applications(location);
	CREATE INDEX IF NOT EXISTS idx_applications_status     ON applications(status);
	CREATE INDEX IF NOT EXISTS idx_applications_applied    ON applications(applied_date);
	CREATE INDEX IF NOT EXISTS idx_applications_ends       ON applications(cool_off_ends);
	CREATE INDEX IF NOT EXISTS idx_applications_start_type ON applications(cool_off_start_type);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('page_size',      '10'),
		('confirm_delete', 'true');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/jobtrack/jobtrack.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "jobtrack", "jobtrack.db"), nil
}
