package domain

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// TimesOverlap reports whether half-open intervals [startA, endA) and [startB, endB) intersect.
// Touching endpoints do not overlap.
func TimesOverlap(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && startB.IsBefore(endA)
}

// SameDay returns true if both times fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a time to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthBounds returns the first and the last day of the month containing t
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DateIn returns midnight of the calendar day of t in loc, keeping the day number
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsBeforeDay returns true if the calendar day of a is strictly before the calendar day of b
func IsBeforeDay(a, b time.Time) bool {
	return DateIn(a, time.UTC).Before(DateIn(b, time.UTC))
}
