package store

import "time"

// DateLayout is the calendar-date form (ISO YYYY-MM-DD) used for the
// applied_date and cool_off_ends columns.
const DateLayout = "2006-01-02"

// Status is the lifecycle state of a tracked application.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
	StatusWithdrawn    Status = "Withdrawn"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{
	StatusApplied,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

func (st Status) Valid() bool {
	switch st {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// CoolOffStartType selects which event starts the six-month cool-off window:
// the application itself, or a later rejection.
type CoolOffStartType string

const (
	StartApplication CoolOffStartType = "application"
	StartRejection   CoolOffStartType = "rejection"
)

func (t CoolOffStartType) Valid() bool {
	return t == StartApplication || t == StartRejection
}

type Application struct {
	ID               int64
	Company          string
	JobTitle         string
	Location         string
	Status           Status
	AppliedDate      time.Time
	CoolOffStartType CoolOffStartType
	CoolOffEnds      time.Time
	CreatedAt        time.Time
}

// ApplicationUpdate carries optional field changes for UpdateApplication.
// Nil fields are left as they are. AppliedDate is immutable and has no
// entry here.
type ApplicationUpdate struct {
	Company          *string
	JobTitle         *string
	Location         *string
	Status           *Status
	CoolOffStartType *CoolOffStartType
	CoolOffEnds      *time.Time
}

type Setting struct {
	Key   string
	Value string
}
