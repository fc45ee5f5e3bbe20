package check_employee_swap

import "github.com/m04kA/SMC-ActivityBookingService/internal/domain"

// SwapCheckResponse HTTP response model
type SwapCheckResponse struct {
	BookingID                  int64  `json:"bookingId"`
	ConflictingBookingID       *int64 `json:"conflictingBookingId,omitempty"`
	ConflictingBookingActivity string `json:"conflictingBookingActivity,omitempty"`
	ConflictCount              int    `json:"conflictCount"`
	CurrentEmployeeName        string `json:"currentEmployeeName"`
	NewEmployeeName            string `json:"newEmployeeName"`
	Location                   string `json:"location"`
	Category                   string `json:"category"`
	StartTime                  string `json:"startTime"`
	EndTime                    string `json:"endTime"`
	SwapNeeded                 bool   `json:"swapNeeded"`
	CanSwap                    bool   `json:"canSwap"`
	Reason                     string `json:"reason"`
}

// FromDomain конвертирует результат проверки в HTTP response
func FromDomain(a *domain.SwapAssessment) *SwapCheckResponse {
	return &SwapCheckResponse{
		BookingID:                  a.BookingID,
		ConflictingBookingID:       a.ConflictingBookingID,
		ConflictingBookingActivity: a.ConflictingBookingActivity,
		ConflictCount:              a.ConflictCount,
		CurrentEmployeeName:        a.CurrentEmployeeName,
		NewEmployeeName:            a.NewEmployeeName,
		Location:                   a.Location,
		Category:                   a.Category,
		StartTime:                  a.StartTime.String(),
		EndTime:                    a.EndTime.String(),
		SwapNeeded:                 a.SwapNeeded,
		CanSwap:                    a.CanSwap,
		Reason:                     a.Reason,
	}
}
