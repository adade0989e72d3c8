// Package tracker implements the operations the UI and CLI expose over the
// record store: create, edit, delete, status changes, page loads and
// summary stats. The write-time rules live here, the rule that no two
// records share a company, job title and location, and the cool-off
// recompute when an application is rejected.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/jobtrack/internal/cooloff"
	"github.com/sadopc/jobtrack/internal/store"
)

// Service carries an explicitly injected store handle, so tests run
// against in-memory instances.
type Service struct {
	store *store.Store

	// now is swapped out in tests for deterministic dates.
	now func() time.Time
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// today is the current calendar date at midnight UTC, the granularity all
// stored dates use.
func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateApplicationInput carries the user-entered fields for a new record.
// Status defaults to Applied, the start type to application.
type CreateApplicationInput struct {
	Company          string
	JobTitle         string
	Location         string
	Status           store.Status
	CoolOffStartType store.CoolOffStartType
}

// CreateApplication validates the input, rejects duplicates, stamps the
// applied date with today and computes the initial cool-off end, then
// returns the stored record with its assigned id.
func (s *Service) CreateApplication(in CreateApplicationInput) (*store.Application, error) {
	company := strings.TrimSpace(in.Company)
	jobTitle := strings.TrimSpace(in.JobTitle)
	location := strings.TrimSpace(in.Location)
	if company == "" || jobTitle == "" || location == "" {
		return nil, fmt.Errorf("company, job title and location are required")
	}

	status := in.Status
	if status == "" {
		status = store.StatusApplied
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	startType := in.CoolOffStartType
	if startType == "" {
		startType = store.StartApplication
	}
	if !startType.Valid() {
		return nil, fmt.Errorf("invalid cool-off start type %q", startType)
	}

	dup, err := s.store.FindDuplicate(company, jobTitle, location, 0)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, fmt.Errorf("%s at %s, %s: %w", jobTitle, company, location, store.ErrDuplicate)
	}

	today := s.today()
	return s.store.CreateApplication(store.Application{
		Company:          company,
		JobTitle:         jobTitle,
		Location:         location,
		Status:           status,
		AppliedDate:      today,
		CoolOffStartType: startType,
		CoolOffEnds:      cooloff.EndDate(today),
	})
}

// UpdateApplicationInput carries optional edits. Nil fields stay as they
// are. The applied date and the cool-off start type are fixed at creation
// and cannot be edited.
type UpdateApplicationInput struct {
	Company  *string
	JobTitle *string
	Location *string
	Status   *store.Status
}

// UpdateApplication merges the given fields into the record, re-checks the
// duplicate rule against every other record, and applies the rejection
// recompute: when the status moves into Rejected and the record counts its
// cool-off from rejection, the window restarts at today plus six months.
// Any other transition leaves the cool-off end untouched.
func (s *Service) UpdateApplication(id int64, in UpdateApplicationInput) (*store.Application, error) {
	current, err := s.store.GetApplication(id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if in.Company != nil {
		merged.Company = strings.TrimSpace(*in.Company)
	}
	if in.JobTitle != nil {
		merged.JobTitle = strings.TrimSpace(*in.JobTitle)
	}
	if in.Location != nil {
		merged.Location = strings.TrimSpace(*in.Location)
	}
	if merged.Company == "" || merged.JobTitle == "" || merged.Location == "" {
		return nil, fmt.Errorf("company, job title and location are required")
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("invalid status %q", *in.Status)
		}
		merged.Status = *in.Status
	}

	// Matching the record's own row is fine, only other records count.
	dup, err := s.store.FindDuplicate(merged.Company, merged.JobTitle, merged.Location, id)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, fmt.Errorf("%s at %s, %s: %w", merged.JobTitle, merged.Company, merged.Location, store.ErrDuplicate)
	}

	upd := store.ApplicationUpdate{
		Company:  &merged.Company,
		JobTitle: &merged.JobTitle,
		Location: &merged.Location,
		Status:   &merged.Status,
	}
	if merged.Status == store.StatusRejected && current.Status != store.StatusRejected &&
		current.CoolOffStartType == store.StartRejection {
		ends := cooloff.EndDate(s.today())
		upd.CoolOffEnds = &ends
	}
	return s.store.UpdateApplication(id, upd)
}

// ChangeStatus is the quick path for moving a record through its
// lifecycle; the rejection recompute applies here the same as in a full
// edit.
func (s *Service) ChangeStatus(id int64, status store.Status) (*store.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	return s.UpdateApplication(id, UpdateApplicationInput{Status: &status})
}

func (s *Service) GetApplication(id int64) (*store.Application, error) {
	return s.store.GetApplication(id)
}

func (s *Service) DeleteApplication(id int64) error {
	return s.store.DeleteApplication(id)
}

// Page is one screen of applications plus the total for pager math.
type Page struct {
	Applications []store.Application
	TotalCount   int
	Page         int
	PageSize     int
}

// LoadPage returns page pageNumber (1-based) ordered by applied date, newest
// first, along with the unfiltered total count.
func (s *Service) LoadPage(pageNumber, pageSize int) (*Page, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = store.DefaultPageSize
	}

	total, err := s.store.CountApplications()
	if err != nil {
		return nil, err
	}
	apps, err := s.store.QueryApplications("applied_date", true, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Applications: apps, TotalCount: total, Page: pageNumber, PageSize: pageSize}, nil
}

// Stats summarizes the tracked applications for the dashboard.
type Stats struct {
	Total          int
	Interviewing   int
	Offers         int
	ActiveCoolOffs int
}

// LoadStats answers the status counts from the index and the active
// cool-off count from a full scan; days remaining is derived per record,
// no index can answer it.
func (s *Service) LoadStats() (*Stats, error) {
	total, err := s.store.CountApplications()
	if err != nil {
		return nil, err
	}
	interviewing, err := s.store.CountWhere("status", string(store.StatusInterviewing))
	if err != nil {
		return nil, err
	}
	offers, err := s.store.CountWhere("status", string(store.StatusOffer))
	if err != nil {
		return nil, err
	}

	apps, err := s.store.AllApplications()
	if err != nil {
		return nil, err
	}
	today := s.today()
	active := 0
	for _, a := range apps {
		if cooloff.Active(a.CoolOffEnds, today) {
			active++
		}
	}
	return &Stats{
		Total:          total,
		Interviewing:   interviewing,
		Offers:         offers,
		ActiveCoolOffs: active,
	}, nil
}

// ActiveCoolOffs returns the applications whose cool-off window is still
// running, soonest ending first.
func (s *Service) ActiveCoolOffs() ([]store.Application, error) {
	apps, err := s.store.QueryApplications("cool_off_ends", false, 0, -1)
	if err != nil {
		return nil, err
	}
	today := s.today()
	var active []store.Application
	for _, a := range apps {
		if cooloff.Active(a.CoolOffEnds, today) {
			active = append(active, a)
		}
	}
	return active, nil
}
