package domain

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// WorkWindow is one contiguous interval [StartTime, EndTime) on a date during which an employee works.
// Windows of the same employee on the same date never overlap.
type WorkWindow struct {
	ID         int64
	EmployeeID int64
	WorkDate   time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	CreatedAt  time.Time
}

// Overlaps returns true if both windows belong to the same employee and date and intersect
func (w *WorkWindow) Overlaps(other *WorkWindow) bool {
	if w.EmployeeID != other.EmployeeID || !SameDay(w.WorkDate, other.WorkDate) {
		return false
	}
	return TimesOverlap(w.StartTime, w.EndTime, other.StartTime, other.EndTime)
}

// CandidateStarts enumerates start times stepping by step minutes while start+duration fits in the window
func (w *WorkWindow) CandidateStarts(durationMinutes, step int) []types.TimeString {
	starts := make([]types.TimeString, 0)
	if durationMinutes <= 0 || step <= 0 {
		return starts
	}

	windowEnd := w.EndTime.Minutes()
	for current := w.StartTime; ; {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil || end.Minutes() > windowEnd {
			break
		}
		starts = append(starts, current)

		next, err := current.AddMinutes(step)
		if err != nil {
			break
		}
		current = next
	}

	return starts
}
