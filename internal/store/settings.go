package store

import (
	"fmt"
	"strconv"
)

// Setting keys. Defaults are seeded by the schema migration, so lookups
// normally hit the table.
const (
	SettingPageSize      = "page_size"
	SettingConfirmDelete = "confirm_delete"
)

// DefaultPageSize is used when the page_size setting is missing or broken.
const DefaultPageSize = 10

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// PageSize returns the configured applications-per-page count, falling back
// to the default when the setting is missing or unparsable.
func (s *Store) PageSize() int {
	v, err := s.GetSetting(SettingPageSize)
	if err != nil {
		return DefaultPageSize
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return DefaultPageSize
	}
	return n
}

// ConfirmDelete reports whether destructive actions in the UI should ask
// first.
func (s *Store) ConfirmDelete() bool {
	v, err := s.GetSetting(SettingConfirmDelete)
	if err != nil {
		return true
	}
	return v != "false"
}
