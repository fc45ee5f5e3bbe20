package domain

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// Swap assessment reasons
const (
	SwapReasonNoConflict          = "No conflict - direct assignment possible"
	SwapReasonCategoryMismatch    = "Activities not compatible - different category"
	SwapReasonLocationMismatch    = "Activities not compatible - different location"
	SwapReasonCapacity            = "Current employee cannot handle the conflicting booking due to capacity"
	SwapReasonPossible            = "Swap possible - both employees can take over each other's booking"
	SwapReasonNoCurrentEmployee   = "Booking has no assigned employee to swap with"
	SwapReasonNoConflictingBooks  = "No conflicting bookings - direct assignment possible"
	SwapReasonNoCompatibleOptions = "No compatible bookings found - different categories, locations, or capacity would be exceeded in one or both directions"
)

// SwapAssessment answers whether assigning a candidate employee to a booking requires
// (and allows) swapping with one of the candidate's conflicting bookings.
type SwapAssessment struct {
	BookingID                  int64
	ConflictingBookingID       *int64
	ConflictingBookingActivity string
	ConflictCount              int
	CurrentEmployeeName        string
	NewEmployeeName            string
	Location                   string
	Category                   string
	StartTime                  types.TimeString
	EndTime                    types.TimeString
	SwapNeeded                 bool
	CanSwap                    bool
	Reason                     string
}

// SwapOptions lists the candidate employee's bookings that can be exchanged with a booking
type SwapOptions struct {
	BookingID           int64
	CurrentEmployeeName string
	NewEmployeeName     string
	Location            string
	Category            string
	StartTime           types.TimeString
	EndTime             types.TimeString
	CompatibleBookings  []CompatibleBooking
	Reason              string
}

// HasCompatibleBookings returns true if at least one swap target exists
func (o *SwapOptions) HasCompatibleBookings() bool {
	return len(o.CompatibleBookings) > 0
}

// CompatibleBooking is a swap target
type CompatibleBooking struct {
	BookingID    int64
	ActivityName string
	CustomerName string
	IsGuest      bool
	Participants int
	StartTime    types.TimeString
	EndTime      types.TimeString
	Date         time.Time
}
