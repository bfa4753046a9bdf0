package engine

import (
	"time"
)

// Schedule computes when a task is due. Urgency is 0-100: 100 means "do it
// immediately", low values mean it can wait until near the move. The
// optional bounds are expressed in days before the move date.
//
// Bounds apply earliest-then-latest, so when a catalog entry carries an
// earliest bound later than its latest bound the latest bound wins. The
// result is never before today.
func Schedule(today, moveDate time.Time, urgency int, earliestDaysBeforeMove, latestDaysBeforeMove *int) time.Time {
	today = dateOnly(today)
	moveDate = dateOnly(moveDate)

	totalDays := wholeDaysBetween(today, moveDate)
	if totalDays <= 0 {
		// Move is today or already past; everything is due now.
		return today
	}

	// Integer arithmetic: floating point puts 1-urgency/100 a hair below
	// the exact value (0.09999... for urgency 90) and floors a day early.
	// Integer division is the exact floor for these non-negative operands.
	daysFromNow := totalDays * (100 - urgency) / 100
	due := today.AddDate(0, 0, daysFromNow)

	if earliestDaysBeforeMove != nil {
		earliest := moveDate.AddDate(0, 0, -*earliestDaysBeforeMove)
		// An earliest bound already in the past cannot be enforced; it must
		// never push the due date backwards.
		if due.Before(earliest) && earliest.After(today) {
			due = earliest
		}
	}
	if latestDaysBeforeMove != nil {
		latest := moveDate.AddDate(0, 0, -*latestDaysBeforeMove)
		if due.After(latest) {
			due = latest
		}
	}
	if due.Before(today) {
		due = today
	}
	return due
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func wholeDaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
