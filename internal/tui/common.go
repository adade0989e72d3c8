package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/jobtrack/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewApplications
	viewStats
	viewMigrate
	viewSettings
)

var viewNames = []string{"Dashboard", "Applications", "Stats", "Migrate", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// --- Helpers ---

func formatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

// todayUTC is the current calendar date at midnight UTC, matching the
// granularity stored dates use.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysLeftLabel(days int) string {
	if days <= 0 {
		return "eligible"
	}
	if days == 1 {
		return "1 day left"
	}
	return fmt.Sprintf("%d days left", days)
}

// nextStatus cycles through the statuses in lifecycle order, wrapping
// back to Applied at the end.
func nextStatus(s store.Status) store.Status {
	for i, cur := range store.Statuses {
		if cur == s {
			return store.Statuses[(i+1)%len(store.Statuses)]
		}
	}
	return store.StatusApplied
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
