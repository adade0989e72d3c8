// Package migrate moves records out of the legacy flat-file store, a single
// JSON array written by the previous version of this tool, into the SQLite
// store. It is a one-shot, user-triggered routine with an explicit state
// machine so the UI can show where a run stopped.
package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/jobtrack/internal/store"
)

// Migration error kinds, matched with errors.Is. Run wraps them with
// detail about the path or the offending record.
var (
	ErrSourceMissing = errors.New("legacy store not found")
	ErrSourceEmpty   = errors.New("legacy store is empty")
	ErrParse         = errors.New("legacy store is malformed")
)

// State of a Runner.
type State int

const (
	StateIdle State = iota
	StateMigrating
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMigrating:
		return "migrating"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// legacyRecord is the JSON shape the previous version persisted. The id
// may be absent in the oldest files; those records get fresh ids.
type legacyRecord struct {
	ID               int64  `json:"id,omitempty"`
	Company          string `json:"company"`
	JobTitle         string `json:"jobTitle"`
	Location         string `json:"location"`
	Status           string `json:"status"`
	AppliedDate      string `json:"appliedDate"`
	CoolOffStartType string `json:"coolOffStartType"`
	CoolOffEnds      string `json:"coolOffEnds"`
}

// Runner drives one migration attempt at a time. Not safe for concurrent
// use; the app calls it from a single goroutine.
type Runner struct {
	store *store.Store
	path  string

	state    State
	migrated int
	lastErr  error
}

func NewRunner(st *store.Store, legacyPath string) *Runner {
	return &Runner{store: st, path: legacyPath}
}

func (r *Runner) State() State  { return r.state }
func (r *Runner) Path() string  { return r.path }
func (r *Runner) Migrated() int { return r.migrated }
func (r *Runner) Err() error    { return r.lastErr }

// Run performs the transfer: read the legacy file, parse it, then replace
// the store contents with the parsed records in one transaction, keeping
// their original ids. Source errors leave the store untouched; a failed
// replace rolls back. Calling Run again after an error retries from
// scratch. Returns the number of records migrated.
func (r *Runner) Run() (int, error) {
	switch r.state {
	case StateError:
		r.state = StateIdle
	case StateSuccess:
		return 0, errors.New("migration already completed")
	case StateMigrating:
		return 0, errors.New("migration already running")
	}
	r.state = StateMigrating
	r.migrated = 0

	apps, err := r.load()
	if err == nil {
		err = r.store.ReplaceApplications(apps)
	}
	if err != nil {
		r.state = StateError
		r.lastErr = err
		return 0, err
	}

	r.state = StateSuccess
	r.lastErr = nil
	r.migrated = len(apps)
	return r.migrated, nil
}

// Verify reports the current record count in the store. It does not
// compare against the legacy file.
func (r *Runner) Verify() (int, error) {
	return r.store.CountApplications()
}

// load reads and parses the legacy file without touching the store.
func (r *Runner) load() ([]store.Application, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrSourceMissing, r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrSourceEmpty, r.path)
	}

	var records []legacyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrSourceEmpty, r.path)
	}

	apps := make([]store.Application, 0, len(records))
	for i, rec := range records {
		a, err := rec.toApplication()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrParse, i, err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

func (rec legacyRecord) toApplication() (store.Application, error) {
	if rec.Company == "" || rec.JobTitle == "" || rec.Location == "" {
		return store.Application{}, errors.New("missing company, jobTitle or location")
	}
	applied, err := time.Parse(store.DateLayout, rec.AppliedDate)
	if err != nil {
		return store.Application{}, fmt.Errorf("bad appliedDate %q", rec.AppliedDate)
	}
	ends, err := time.Parse(store.DateLayout, rec.CoolOffEnds)
	if err != nil {
		return store.Application{}, fmt.Errorf("bad coolOffEnds %q", rec.CoolOffEnds)
	}
	status := store.Status(rec.Status)
	if !status.Valid() {
		return store.Application{}, fmt.Errorf("bad status %q", rec.Status)
	}
	startType := store.CoolOffStartType(rec.CoolOffStartType)
	if rec.CoolOffStartType == "" {
		startType = store.StartApplication
	}
	if !startType.Valid() {
		return store.Application{}, fmt.Errorf("bad coolOffStartType %q", rec.CoolOffStartType)
	}

	return store.Application{
		ID:               rec.ID,
		Company:          rec.Company,
		JobTitle:         rec.JobTitle,
		Location:         rec.Location,
		Status:           status,
		AppliedDate:      applied,
		CoolOffStartType: startType,
		CoolOffEnds:      ends,
	}, nil
}

// DefaultLegacyPath returns ~/.config/jobtrack/applications.json, where
// the previous version kept its data.
func DefaultLegacyPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "jobtrack", "applications.json"), nil
}
