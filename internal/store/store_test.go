package store

import (
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

// seedApplication inserts a row directly with explicit dates, bypassing the
// service layer rules.
func seedApplication(t *testing.T, s *Store, company, title, location string, status Status, applied, ends string) int64 {
	t.Helper()
	res, err := s.db.Exec(
		`INSERT INTO applications (company, job_title, location, status, applied_date, cool_off_start_type, cool_off_ends)
		 VALUES (?, ?, ?, ?, ?, 'application', ?)`,
		company, title, location, string(status), applied, ends,
	)
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func sampleApplication(company string) Application {
	applied, _ := time.Parse(DateLayout, "2024-03-10")
	ends, _ := time.Parse(DateLayout, "2024-09-10")
	return Application{
		Company:          company,
		JobTitle:         "Engineer",
		Location:         "Remote",
		Status:           StatusApplied,
		AppliedDate:      applied,
		CoolOffStartType: StartApplication,
		CoolOffEnds:      ends,
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/jobtrack.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Create / Get
// ============================================================

func TestCreateAndGetApplication(t *testing.T) {
	s := newTestStore(t)
	in := sampleApplication("Acme")

	a, err := s.CreateApplication(in)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if a.Company != "Acme" || a.JobTitle != "Engineer" || a.Location != "Remote" {
		t.Fatalf("unexpected fields: %+v", a)
	}
	if a.Status != StatusApplied || a.CoolOffStartType != StartApplication {
		t.Fatalf("unexpected enums: %+v", a)
	}
	if !a.AppliedDate.Equal(in.AppliedDate) || !a.CoolOffEnds.Equal(in.CoolOffEnds) {
		t.Fatalf("dates did not round-trip: %+v", a)
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}

	got, err := s.GetApplication(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *a {
		t.Fatalf("get mismatch: %+v vs %+v", got, a)
	}
}

func TestCreateAssignsFreshIDs(t *testing.T) {
	s := newTestStore(t)
	a1, err := s.CreateApplication(sampleApplication("One"))
	if err != nil {
		t.Fatal(err)
	}
	a2, err := s.CreateApplication(sampleApplication("Two"))
	if err != nil {
		t.Fatal(err)
	}
	if a1.ID == a2.ID {
		t.Fatalf("ids should differ, both %d", a1.ID)
	}
	if a2.ID <= a1.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a1.ID, a2.ID)
	}
}

func TestCreateIgnoresGivenID(t *testing.T) {
	s := newTestStore(t)
	in := sampleApplication("Acme")
	in.ID = 99
	a, err := s.CreateApplication(in)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == 99 {
		t.Fatal("create should assign its own id")
	}
}

func TestGetApplicationNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetApplication(999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Update
// ============================================================

func TestUpdateApplicationPartial(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateApplication(sampleApplication("Acme"))
	if err != nil {
		t.Fatal(err)
	}

	title := "Senior Engineer"
	got, err := s.UpdateApplication(a.ID, ApplicationUpdate{JobTitle: &title})
	if err != nil {
		t.Fatal(err)
	}
	if got.JobTitle != "Senior Engineer" {
		t.Fatalf("job title not updated: %q", got.JobTitle)
	}
	if got.Company != a.Company || got.Location != a.Location || got.Status != a.Status {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if !got.AppliedDate.Equal(a.AppliedDate) || !got.CoolOffEnds.Equal(a.CoolOffEnds) {
		t.Fatalf("dates changed on partial update: %+v", got)
	}
}

func TestUpdateApplicationStatusAndEnds(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateApplication(sampleApplication("Acme"))
	if err != nil {
		t.Fatal(err)
	}

	st := StatusRejected
	ends := date(t, "2025-01-15")
	got, err := s.UpdateApplication(a.ID, ApplicationUpdate{Status: &st, CoolOffEnds: &ends})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusRejected {
		t.Fatalf("status not updated: %q", got.Status)
	}
	if !got.CoolOffEnds.Equal(ends) {
		t.Fatalf("cool-off end not updated: %v", got.CoolOffEnds)
	}
}

func TestUpdateApplicationNoFields(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateApplication(sampleApplication("Acme"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.UpdateApplication(a.ID, ApplicationUpdate{})
	if err != nil {
		t.Fatal(err)
	}
	if *got != *a {
		t.Fatalf("empty update changed the record: %+v vs %+v", got, a)
	}
}

func TestUpdateApplicationNotFound(t *testing.T) {
	s := newTestStore(t)
	title := "Ghost"
	_, err := s.UpdateApplication(42, ApplicationUpdate{JobTitle: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ============================================================
// Delete
// ============================================================

func TestDeleteApplication(t *testing.T) {
	s := newTestStore(t)
	a, err := s.CreateApplication(sampleApplication("Acme"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteApplication(a.ID); err != nil {
		t.Fatal(err)
	}
	_, err = s.GetApplication(a.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "Acme", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	if err := s.DeleteApplication(999); err != nil {
		t.Fatalf("deleting absent id should be a no-op, got %v", err)
	}
	n, _ := s.CountApplications()
	if n != 1 {
		t.Fatalf("existing records should survive, count %d", n)
	}
}

// ============================================================
// Count / CountWhere
// ============================================================

func TestCountApplications(t *testing.T) {
	s := newTestStore(t)
	n, err := s.CountApplications()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}

	seedApplication(t, s, "A", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")
	seedApplication(t, s, "B", "Eng", "NY", StatusOffer, "2024-01-02", "2024-07-02")

	n, err = s.CountApplications()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
}

func TestCountWhere(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "A", "Eng", "NY", StatusInterviewing, "2024-01-01", "2024-07-01")
	seedApplication(t, s, "B", "Eng", "NY", StatusInterviewing, "2024-01-02", "2024-07-02")
	seedApplication(t, s, "C", "Eng", "NY", StatusOffer, "2024-01-03", "2024-07-03")

	n, err := s.CountWhere("status", string(StatusInterviewing))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 interviewing, got %d", n)
	}

	n, err = s.CountWhere("company", "C")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 for company C, got %d", n)
	}
}

func TestCountWhereUnknownColumn(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CountWhere("password", "x"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

// ============================================================
// Query / All
// ============================================================

func TestQueryApplicationsOrder(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "Old", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")
	seedApplication(t, s, "Mid", "Eng", "NY", StatusApplied, "2024-02-01", "2024-08-01")
	seedApplication(t, s, "New", "Eng", "NY", StatusApplied, "2024-03-01", "2024-09-01")

	apps, err := s.QueryApplications("applied_date", true, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 3 {
		t.Fatalf("expected 3, got %d", len(apps))
	}
	if apps[0].Company != "New" || apps[1].Company != "Mid" || apps[2].Company != "Old" {
		t.Fatalf("wrong order: %s, %s, %s", apps[0].Company, apps[1].Company, apps[2].Company)
	}

	asc, err := s.QueryApplications("applied_date", false, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if asc[0].Company != "Old" {
		t.Fatalf("ascending should start with Old, got %s", asc[0].Company)
	}
}

func TestQueryApplicationsOffsetLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= 5; i++ {
		applied := time.Date(2024, time.January, i, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		seedApplication(t, s, "C"+applied, "Eng", "NY", StatusApplied, applied, "2024-07-01")
	}

	apps, err := s.QueryApplications("applied_date", true, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2, got %d", len(apps))
	}
	// Descending: days 5,4 | 3,2 | 1
	if apps[0].AppliedDate.Day() != 3 || apps[1].AppliedDate.Day() != 2 {
		t.Fatalf("wrong slice: days %d, %d", apps[0].AppliedDate.Day(), apps[1].AppliedDate.Day())
	}
}

func TestQueryApplicationsTiebreak(t *testing.T) {
	s := newTestStore(t)
	// Same applied date everywhere; pages must still never overlap.
	var ids []int64
	for i := 0; i < 4; i++ {
		id := seedApplication(t, s, "Same", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")
		ids = append(ids, id)
	}

	var got []int64
	for page := 0; page < 2; page++ {
		apps, err := s.QueryApplications("applied_date", true, page*2, 2)
		if err != nil {
			t.Fatal(err)
		}
		for _, a := range apps {
			got = append(got, a.ID)
		}
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 across pages, got %d", len(got))
	}
	seen := map[int64]bool{}
	for _, id := range got {
		if seen[id] {
			t.Fatalf("id %d appeared twice across pages", id)
		}
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Fatalf("id %d missing from pages", id)
		}
	}
}

func TestQueryApplicationsNegativeLimit(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "A", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")
	seedApplication(t, s, "B", "Eng", "NY", StatusApplied, "2024-01-02", "2024-07-02")

	apps, err := s.QueryApplications("cool_off_ends", false, 0, -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("negative limit should return all, got %d", len(apps))
	}
}

func TestQueryApplicationsUnknownColumn(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.QueryApplications("id; DROP TABLE applications", true, 0, 10); err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestAllApplications(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "A", "Eng", "NY", StatusApplied, "2024-02-01", "2024-08-01")
	seedApplication(t, s, "B", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	apps, err := s.AllApplications()
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2, got %d", len(apps))
	}
	if apps[0].ID >= apps[1].ID {
		t.Fatal("all should order by id")
	}
}

// ============================================================
// Clear / BulkInsert / Replace
// ============================================================

func TestClearApplications(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "A", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	if err := s.ClearApplications(); err != nil {
		t.Fatal(err)
	}
	n, _ := s.CountApplications()
	if n != 0 {
		t.Fatalf("expected empty store, count %d", n)
	}
}

func TestBulkInsertPreservesIDs(t *testing.T) {
	s := newTestStore(t)
	a := sampleApplication("Legacy")
	a.ID = 7

	if err := s.BulkInsertApplications([]Application{a}); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetApplication(7)
	if err != nil {
		t.Fatal(err)
	}
	if got.Company != "Legacy" {
		t.Fatalf("unexpected record under id 7: %+v", got)
	}
}

func TestBulkInsertZeroIDAutoAssigns(t *testing.T) {
	s := newTestStore(t)
	a := sampleApplication("NoID")
	a.ID = 0

	if err := s.BulkInsertApplications([]Application{a}); err != nil {
		t.Fatal(err)
	}
	apps, _ := s.AllApplications()
	if len(apps) != 1 || apps[0].ID == 0 {
		t.Fatalf("expected auto-assigned id, got %+v", apps)
	}
}

func TestCreateAfterBulkInsertKeepsIDsUnique(t *testing.T) {
	s := newTestStore(t)
	a := sampleApplication("Legacy")
	a.ID = 12
	if err := s.BulkInsertApplications([]Application{a}); err != nil {
		t.Fatal(err)
	}

	fresh, err := s.CreateApplication(sampleApplication("Fresh"))
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ID <= 12 {
		t.Fatalf("fresh id %d collides with migrated range", fresh.ID)
	}
}

func TestReplaceApplications(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "Old", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	a := sampleApplication("New")
	a.ID = 3
	if err := s.ReplaceApplications([]Application{a}); err != nil {
		t.Fatal(err)
	}

	apps, _ := s.AllApplications()
	if len(apps) != 1 || apps[0].ID != 3 || apps[0].Company != "New" {
		t.Fatalf("replace result wrong: %+v", apps)
	}
}

func TestReplaceApplicationsRollsBack(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "Keep", "Eng", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	// Two records with the same explicit id make the second insert fail;
	// the transaction must roll the clear back too.
	a := sampleApplication("Dup1")
	a.ID = 5
	b := sampleApplication("Dup2")
	b.ID = 5
	if err := s.ReplaceApplications([]Application{a, b}); err == nil {
		t.Fatal("expected replace to fail")
	}

	apps, _ := s.AllApplications()
	if len(apps) != 1 || apps[0].Company != "Keep" {
		t.Fatalf("store should be untouched after rollback: %+v", apps)
	}
}

// ============================================================
// FindDuplicate
// ============================================================

func TestFindDuplicateCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	id := seedApplication(t, s, "Acme", "Engineer", "New York", StatusApplied, "2024-01-01", "2024-07-01")

	dup, err := s.FindDuplicate("ACME", "engineer", "NEW YORK", 0)
	if err != nil {
		t.Fatal(err)
	}
	if dup == nil || dup.ID != id {
		t.Fatalf("expected duplicate id %d, got %+v", id, dup)
	}
}

func TestFindDuplicateExcludesID(t *testing.T) {
	s := newTestStore(t)
	id := seedApplication(t, s, "Acme", "Engineer", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	dup, err := s.FindDuplicate("Acme", "Engineer", "NY", id)
	if err != nil {
		t.Fatal(err)
	}
	if dup != nil {
		t.Fatalf("record should not match itself, got %+v", dup)
	}
}

func TestFindDuplicateNoMatch(t *testing.T) {
	s := newTestStore(t)
	seedApplication(t, s, "Acme", "Engineer", "NY", StatusApplied, "2024-01-01", "2024-07-01")

	dup, err := s.FindDuplicate("Acme", "Designer", "NY", 0)
	if err != nil {
		t.Fatal(err)
	}
	if dup != nil {
		t.Fatalf("different title should not match, got %+v", dup)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaultsSeeded(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetSetting(SettingPageSize)
	if err != nil {
		t.Fatal(err)
	}
	if v != "10" {
		t.Fatalf("expected default page_size 10, got %q", v)
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting(SettingPageSize, "25"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting(SettingPageSize)
	if v != "25" {
		t.Fatalf("expected 25, got %q", v)
	}

	if err := s.SetSetting("brand_new", "x"); err != nil {
		t.Fatal(err)
	}
	v, _ = s.GetSetting("brand_new")
	if v != "x" {
		t.Fatalf("expected x, got %q", v)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) < 2 {
		t.Fatalf("expected seeded settings, got %d", len(settings))
	}
}

func TestPageSizeFallsBack(t *testing.T) {
	s := newTestStore(t)
	if got := s.PageSize(); got != 10 {
		t.Fatalf("expected seeded 10, got %d", got)
	}

	s.SetSetting(SettingPageSize, "not a number")
	if got := s.PageSize(); got != DefaultPageSize {
		t.Fatalf("expected fallback %d, got %d", DefaultPageSize, got)
	}

	s.SetSetting(SettingPageSize, "0")
	if got := s.PageSize(); got != DefaultPageSize {
		t.Fatalf("zero should fall back, got %d", got)
	}
}

func TestConfirmDelete(t *testing.T) {
	s := newTestStore(t)
	if !s.ConfirmDelete() {
		t.Fatal("confirm_delete should default to true")
	}
	s.SetSetting(SettingConfirmDelete, "false")
	if s.ConfirmDelete() {
		t.Fatal("expected false after override")
	}
}

// ============================================================
// Enum helpers
// ============================================================

func TestStatusValid(t *testing.T) {
	for _, st := range Statuses {
		if !st.Valid() {
			t.Fatalf("%q should be valid", st)
		}
	}
	if Status("Ghosted").Valid() {
		t.Fatal("unknown status should be invalid")
	}
	if Status("").Valid() {
		t.Fatal("empty status should be invalid")
	}
}

func TestCoolOffStartTypeValid(t *testing.T) {
	if !StartApplication.Valid() || !StartRejection.Valid() {
		t.Fatal("known start types should be valid")
	}
	if CoolOffStartType("firing").Valid() {
		t.Fatal("unknown start type should be invalid")
	}
}
