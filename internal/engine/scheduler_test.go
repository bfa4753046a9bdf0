package engine

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intp(n int) *int { return &n }

func TestSchedule_UrgencyEndpoints(t *testing.T) {
	today := date(2026, time.January, 1)
	move := date(2026, time.January, 31) // 30 days out

	if got := Schedule(today, move, 100, nil, nil); !got.Equal(today) {
		t.Errorf("urgency 100 should be due today, got %v", got)
	}
	if got := Schedule(today, move, 0, nil, nil); !got.Equal(move) {
		t.Errorf("urgency 0 should be due on move day, got %v", got)
	}
	if got := Schedule(today, move, 50, nil, nil); !got.Equal(date(2026, time.January, 16)) {
		t.Errorf("urgency 50 should be due Jan 16, got %v", got)
	}
}

func TestSchedule_ExactFloorNoFloatDrift(t *testing.T) {
	today := date(2026, time.January, 1)

	// Inputs where a float rendition of totalDays*(1-urgency/100) lands a
	// hair below the exact product and floors a day early.
	cases := []struct {
		totalDays int
		urgency   int
		want      time.Time
	}{
		{30, 90, date(2026, time.January, 4)}, // 30*0.10 = 3, not floor(2.999...)
		{5, 80, date(2026, time.January, 2)},  // 5*0.20 = 1
		{10, 70, date(2026, time.January, 4)}, // 10*0.30 = 3
	}
	for _, c := range cases {
		move := today.AddDate(0, 0, c.totalDays)
		if got := Schedule(today, move, c.urgency, nil, nil); !got.Equal(c.want) {
			t.Errorf("totalDays=%d urgency=%d: got %v, want %v", c.totalDays, c.urgency, got, c.want)
		}
	}

	// Full sweep against the exact integer floor.
	for totalDays := 1; totalDays <= 120; totalDays++ {
		move := today.AddDate(0, 0, totalDays)
		for urgency := 0; urgency <= 100; urgency++ {
			want := today.AddDate(0, 0, totalDays*(100-urgency)/100)
			if got := Schedule(today, move, urgency, nil, nil); !got.Equal(want) {
				t.Fatalf("totalDays=%d urgency=%d: got %v, want %v", totalDays, urgency, got, want)
			}
		}
	}
}

func TestSchedule_LatestBoundClamps(t *testing.T) {
	today := date(2026, time.January, 1)
	move := date(2026, time.January, 31)

	got := Schedule(today, move, 0, nil, intp(5))
	if !got.Equal(date(2026, time.January, 26)) {
		t.Errorf("latest bound 5 days should clamp to Jan 26, got %v", got)
	}
}

func TestSchedule_EarliestBoundRaises(t *testing.T) {
	today := date(2026, time.January, 1)
	move := date(2026, time.March, 2) // 60 days out

	// High urgency puts the raw due date today; earliest bound of 30 days
	// before the move pushes it to Jan 31.
	got := Schedule(today, move, 100, intp(30), nil)
	if !got.Equal(date(2026, time.January, 31)) {
		t.Errorf("earliest bound should raise due date to Jan 31, got %v", got)
	}
}

func TestSchedule_EarliestBoundInPastIgnored(t *testing.T) {
	today := date(2026, time.January, 20)
	move := date(2026, time.January, 31)

	// earliest = Dec 2, before today: unenforceable, must not move the date
	got := Schedule(today, move, 100, intp(60), nil)
	if !got.Equal(today) {
		t.Errorf("past earliest bound must be ignored, got %v", got)
	}
}

func TestSchedule_LatestBoundInPastResolvesToToday(t *testing.T) {
	today := date(2026, time.January, 28)
	move := date(2026, time.January, 31)

	// latest = Jan 21, already past; the final clamp wins
	got := Schedule(today, move, 0, nil, intp(10))
	if !got.Equal(today) {
		t.Errorf("past latest bound must resolve to today, got %v", got)
	}
}

func TestSchedule_PathologicalBoundsLatestWins(t *testing.T) {
	today := date(2026, time.January, 1)
	move := date(2026, time.March, 2)

	// earliest 10 days before move (Feb 20) is later than latest 30 days
	// before move (Jan 31): accepted catalog inconsistency, latest wins.
	got := Schedule(today, move, 100, intp(10), intp(30))
	if !got.Equal(date(2026, time.January, 31)) {
		t.Errorf("latest bound should win, got %v", got)
	}
}

func TestSchedule_MoveTodayOrPast(t *testing.T) {
	today := date(2026, time.January, 10)
	if got := Schedule(today, today, 0, nil, nil); !got.Equal(today) {
		t.Errorf("move today should be due today, got %v", got)
	}
	if got := Schedule(today, date(2025, time.June, 1), 0, intp(30), intp(5)); !got.Equal(today) {
		t.Errorf("move in the past should be due today, got %v", got)
	}
}

func TestSchedule_NeverBeforeToday(t *testing.T) {
	today := date(2026, time.January, 1)
	move := date(2026, time.January, 31)
	for urgency := 0; urgency <= 100; urgency += 10 {
		got := Schedule(today, move, urgency, intp(45), intp(40))
		if got.Before(today) {
			t.Errorf("urgency %d: due date %v before today", urgency, got)
		}
	}
}

func TestSchedule_Pure(t *testing.T) {
	today := date(2026, time.January, 1)
	move := date(2026, time.January, 31)
	a := Schedule(today, move, 37, intp(20), intp(3))
	b := Schedule(today, move, 37, intp(20), intp(3))
	if !a.Equal(b) {
		t.Errorf("identical inputs must give identical dates: %v vs %v", a, b)
	}
}

func TestSchedule_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, time.January, 1, 23, 30, 0, 0, time.UTC)
	move := time.Date(2026, time.January, 31, 1, 0, 0, 0, time.UTC)
	got := Schedule(today, move, 50, nil, nil)
	if !got.Equal(date(2026, time.January, 16)) {
		t.Errorf("scheduling should work on whole days, got %v", got)
	}
}
