package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const applicationCols = `id, company, job_title, location, status, applied_date, cool_off_start_type, cool_off_ends, created_at`

// queryColumns are the indexed columns accepted by CountWhere and
// QueryApplications. Column names arrive as strings, so they are checked
// here instead of being interpolated blindly.
var queryColumns = map[string]bool{
	"company":             true,
	"job_title":           true,
	"location":            true,
	"status":              true,
	"applied_date":        true,
	"cool_off_start_type": true,
	"cool_off_ends":       true,
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*Application, error) {
	a := &Application{}
	var status, startType, applied, ends, createdAt string
	err := row.Scan(&a.ID, &a.Company, &a.JobTitle, &a.Location, &status, &applied, &startType, &ends, &createdAt)
	if err != nil {
		return nil, err
	}
	a.Status = Status(status)
	a.CoolOffStartType = CoolOffStartType(startType)
	a.AppliedDate, _ = time.Parse(DateLayout, applied)
	a.CoolOffEnds, _ = time.Parse(DateLayout, ends)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx, so inserts can run
// standalone or inside the replace transaction.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertApplication(ex execer, a Application) (int64, error) {
	// A zero ID lets SQLite assign the next one; an explicit ID is kept,
	// which is what the legacy migration needs.
	var id any
	if a.ID > 0 {
		id = a.ID
	}
	res, err := ex.Exec(
		`INSERT INTO applications (id, company, job_title, location, status, applied_date, cool_off_start_type, cool_off_ends)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.Company, a.JobTitle, a.Location, string(a.Status),
		a.AppliedDate.Format(DateLayout), string(a.CoolOffStartType), a.CoolOffEnds.Format(DateLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CreateApplication persists a new record and returns it with its assigned
// id. The ID and CreatedAt fields of the argument are ignored.
func (s *Store) CreateApplication(a Application) (*Application, error) {
	a.ID = 0
	id, err := insertApplication(s.db, a)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return s.GetApplication(id)
}

func (s *Store) GetApplication(id int64) (*Application, error) {
	row := s.db.QueryRow(
		`SELECT `+applicationCols+` FROM applications WHERE id = ?`, id,
	)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return a, nil
}

// UpdateApplication merges the non-nil fields of upd into the stored record
// and returns the result. Returns ErrNotFound if the id does not exist.
func (s *Store) UpdateApplication(id int64, upd ApplicationUpdate) (*Application, error) {
	var sets []string
	var args []any
	if upd.Company != nil {
		sets = append(sets, "company = ?")
		args = append(args, *upd.Company)
	}
	if upd.JobTitle != nil {
		sets = append(sets, "job_title = ?")
		args = append(args, *upd.JobTitle)
	}
	if upd.Location != nil {
		sets = append(sets, "location = ?")
		args = append(args, *upd.Location)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.CoolOffStartType != nil {
		sets = append(sets, "cool_off_start_type = ?")
		args = append(args, string(*upd.CoolOffStartType))
	}
	if upd.CoolOffEnds != nil {
		sets = append(sets, "cool_off_ends = ?")
		args = append(args, upd.CoolOffEnds.Format(DateLayout))
	}
	if len(sets) == 0 {
		return s.GetApplication(id)
	}

	args = append(args, id)
	res, err := s.db.Exec(
		`UPDATE applications SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update application %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
	}
	return s.GetApplication(id)
}

// DeleteApplication removes the record. Deleting an absent id is a no-op.
func (s *Store) DeleteApplication(id int64) error {
	_, err := s.db.Exec(`DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete application %d: %w", id, err)
	}
	return nil
}

func (s *Store) CountApplications() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM applications`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

// CountWhere counts records matching an equality predicate on one of the
// indexed columns.
func (s *Store) CountWhere(field string, value any) (int, error) {
	if !queryColumns[field] {
		return 0, fmt.Errorf("count where: unknown column %q", field)
	}
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM applications WHERE `+field+` = ?`, value).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count where %s: %w", field, err)
	}
	return n, nil
}

// QueryApplications returns a contiguous slice of records ordered by
// sortField, with id as tiebreaker so pages never overlap or skip rows
// when sort values repeat. A negative limit returns everything from offset.
func (s *Store) QueryApplications(sortField string, descending bool, offset, limit int) ([]Application, error) {
	if !queryColumns[sortField] {
		return nil, fmt.Errorf("query applications: unknown sort column %q", sortField)
	}
	dir := "ASC"
	if descending {
		dir = "DESC"
	}
	query := fmt.Sprintf(
		`SELECT %s FROM applications ORDER BY %s %s, id %s LIMIT ? OFFSET ?`,
		applicationCols, sortField, dir, dir,
	)

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// AllApplications returns every record ordered by id. Used for aggregates
// that evaluate a derived predicate per record and cannot ride an index.
func (s *Store) AllApplications() ([]Application, error) {
	rows, err := s.db.Query(`SELECT ` + applicationCols + ` FROM applications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("all applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// ClearApplications removes all records. Used by the legacy migration.
func (s *Store) ClearApplications() error {
	_, err := s.db.Exec(`DELETE FROM applications`)
	if err != nil {
		return fmt.Errorf("clear applications: %w", err)
	}
	return nil
}

// BulkInsertApplications inserts records preserving their ids. Used by the
// legacy migration.
func (s *Store) BulkInsertApplications(apps []Application) error {
	for _, a := range apps {
		if _, err := insertApplication(s.db, a); err != nil {
			return fmt.Errorf("bulk insert application %d: %w", a.ID, err)
		}
	}
	return nil
}

// ReplaceApplications clears the table and inserts the given records inside
// one transaction, so a failed migration never leaves the store half
// written.
func (s *Store) ReplaceApplications(apps []Application) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM applications`); err != nil {
		return fmt.Errorf("clear applications: %w", err)
	}
	for _, a := range apps {
		if _, err := insertApplication(tx, a); err != nil {
			return fmt.Errorf("insert application %d: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// FindDuplicate looks for a record with the same company, job title and
// location, compared case-insensitively, skipping excludeID (pass 0 when
// creating). Returns nil, nil when there is no match.
func (s *Store) FindDuplicate(company, jobTitle, location string, excludeID int64) (*Application, error) {
	row := s.db.QueryRow(
		`SELECT `+applicationCols+` FROM applications
		 WHERE LOWER(company) = LOWER(?)
		   AND LOWER(job_title) = LOWER(?)
		   AND LOWER(location) = LOWER(?)
		   AND id != ?
		 LIMIT 1`,
		company, jobTitle, location, excludeID,
	)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find duplicate: %w", err)
	}
	return a, nil
}
