package cooloff

import (
	"testing"
	"time"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

// ============================================================
// EndDate
// ============================================================

func TestEndDateSixMonths(t *testing.T) {
	tests := []struct {
		event, want string
	}{
		{"2024-01-01", "2024-07-01"},
		{"2024-03-10", "2024-09-10"},
		{"2024-07-15", "2025-01-15"},
		{"2024-12-01", "2025-06-01"},
	}
	for _, tt := range tests {
		got := EndDate(day(t, tt.event))
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("EndDate(%s) = %s, want %s", tt.event, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestEndDateClampsToMonthEnd(t *testing.T) {
	// When the target month is shorter, the day clamps to its last valid
	// day instead of rolling into the next month.
	tests := []struct {
		event, want string
	}{
		{"2023-08-31", "2024-02-29"}, // leap February
		{"2022-08-31", "2023-02-28"},
		{"2024-05-31", "2024-11-30"},
		{"2024-08-29", "2025-02-28"},
		{"2024-01-31", "2024-07-31"}, // July has 31 days, no clamp
		{"2024-02-29", "2024-08-29"},
	}
	for _, tt := range tests {
		got := EndDate(day(t, tt.event))
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("EndDate(%s) = %s, want %s", tt.event, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestEndDateYearRollover(t *testing.T) {
	got := EndDate(day(t, "2024-10-31"))
	if got.Format("2006-01-02") != "2025-04-30" {
		t.Fatalf("expected 2025-04-30, got %s", got.Format("2006-01-02"))
	}
}

// ============================================================
// DaysRemaining
// ============================================================

func TestDaysRemaining(t *testing.T) {
	end := day(t, "2024-07-01")
	tests := []struct {
		today string
		want  int
	}{
		{"2024-06-28", 3},
		{"2024-06-30", 1},
		{"2024-07-01", 0},
		{"2024-07-02", -1},
		{"2024-01-01", 182},
	}
	for _, tt := range tests {
		got := DaysRemaining(end, day(t, tt.today))
		if got != tt.want {
			t.Errorf("DaysRemaining(%s, %s) = %d, want %d", "2024-07-01", tt.today, got, tt.want)
		}
	}
}

func TestDaysRemainingRoundsPartialDaysUp(t *testing.T) {
	end := day(t, "2024-07-01")

	// An hour before midnight still counts as one remaining day.
	today := time.Date(2024, time.June, 30, 23, 0, 0, 0, time.UTC)
	if got := DaysRemaining(end, today); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	// An hour into the end date counts as zero, not negative one.
	today = time.Date(2024, time.July, 1, 1, 0, 0, 0, time.UTC)
	if got := DaysRemaining(end, today); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDaysRemainingStrictlyDecreasing(t *testing.T) {
	end := day(t, "2024-07-01")
	prev := DaysRemaining(end, day(t, "2024-06-01"))
	for d := day(t, "2024-06-02"); !d.After(day(t, "2024-07-10")); d = d.AddDate(0, 0, 1) {
		got := DaysRemaining(end, d)
		if got >= prev {
			t.Fatalf("not strictly decreasing at %s: %d then %d", d.Format("2006-01-02"), prev, got)
		}
		prev = got
	}
}

func TestDaysRemainingSignFlipsAtEndDate(t *testing.T) {
	end := day(t, "2024-07-01")

	if got := DaysRemaining(end, day(t, "2024-06-30")); got <= 0 {
		t.Fatalf("day before end should be positive, got %d", got)
	}
	if got := DaysRemaining(end, end); got > 0 {
		t.Fatalf("end date itself should not be positive, got %d", got)
	}
}

// ============================================================
// Active
// ============================================================

func TestActive(t *testing.T) {
	end := day(t, "2024-07-01")
	if !Active(end, day(t, "2024-06-30")) {
		t.Fatal("window should be active the day before it ends")
	}
	if Active(end, day(t, "2024-07-01")) {
		t.Fatal("window should be over on its end date")
	}
	if Active(end, day(t, "2024-08-01")) {
		t.Fatal("window should be over after its end date")
	}
}

func TestEndDateRoundTripWithDaysRemaining(t *testing.T) {
	event := day(t, "2024-01-15")
	end := EndDate(event)

	// At the event itself the full window is ahead.
	if got := DaysRemaining(end, event); got <= 0 {
		t.Fatalf("expected positive remaining at event date, got %d", got)
	}
	// On the end date, eligible again.
	if Active(end, end) {
		t.Fatal("expected eligibility on the end date")
	}
}
