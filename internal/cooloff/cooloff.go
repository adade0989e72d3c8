// Package cooloff holds the re-application eligibility date rules. It is
// pure calendar arithmetic: callers pass in the event date and the current
// date, nothing here touches the clock or the store.
package cooloff

import (
	"math"
	"time"
)

// Months is the length of the cool-off window after the triggering event.
const Months = 6

// EndDate returns the date six calendar months after event, keeping the day
// of month where possible and clamping to the last day of the target month
// otherwise. Aug 31 lands on Feb 28 (29 in leap years), May 31 on Nov 30,
// Jan 31 on Jul 31 unchanged.
func EndDate(event time.Time) time.Time {
	y, m, d := event.Date()
	first := time.Date(y, m+Months, 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// DaysRemaining reports how many days of cool-off are left at the given
// moment, rounding partial days up. Positive means the window is still
// active; zero or negative means eligible to reapply. The sign flips
// exactly on the end date.
func DaysRemaining(end, today time.Time) int {
	return int(math.Ceil(end.Sub(today).Hours() / 24))
}

// Active reports whether the cool-off window is still running.
func Active(end, today time.Time) bool {
	return DaysRemaining(end, today) > 0
}
