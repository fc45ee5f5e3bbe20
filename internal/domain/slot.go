package domain

import (
	"sort"

	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// TimeSlot is a candidate interval of a day, tagged as bookable or not
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
}

// SlotKey identity of a slot for deduplication
type SlotKey struct {
	Start int
	End   int
}

// Key returns the identity of the slot
func (s TimeSlot) Key() SlotKey {
	return SlotKey{Start: s.StartTime.Minutes(), End: s.EndTime.Minutes()}
}

// SortSlots orders slots by start time, then end time
func SortSlots(slots []TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		ki, kj := slots[i].Key(), slots[j].Key()
		if ki.Start != kj.Start {
			return ki.Start < kj.Start
		}
		return ki.End < kj.End
	})
}
