package get_swap_options

import "github.com/m04kA/SMC-ActivityBookingService/internal/domain"

// SwapOptionsResponse HTTP response model
type SwapOptionsResponse struct {
	BookingID             int64                       `json:"bookingId"`
	CurrentEmployeeName   string                      `json:"currentEmployeeName"`
	NewEmployeeName       string                      `json:"newEmployeeName"`
	Location              string                      `json:"location"`
	Category              string                      `json:"category"`
	StartTime             string                      `json:"startTime"`
	EndTime               string                      `json:"endTime"`
	HasCompatibleBookings bool                        `json:"hasCompatibleBookings"`
	CompatibleBookings    []CompatibleBookingResponse `json:"compatibleBookings"`
	Reason                string                      `json:"reason,omitempty"`
}

// CompatibleBookingResponse бронирование, с которым возможен обмен
type CompatibleBookingResponse struct {
	BookingID    int64  `json:"bookingId"`
	ActivityName string `json:"activityName"`
	CustomerName string `json:"customerName"`
	IsGuest      bool   `json:"isGuest"`
	Participants int    `json:"participants"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Date         string `json:"date"`
}

// FromDomain конвертирует варианты обмена в HTTP response
func FromDomain(o *domain.SwapOptions) *SwapOptionsResponse {
	compatible := make([]CompatibleBookingResponse, 0, len(o.CompatibleBookings))
	for _, c := range o.CompatibleBookings {
		compatible = append(compatible, CompatibleBookingResponse{
			BookingID:    c.BookingID,
			ActivityName: c.ActivityName,
			CustomerName: c.CustomerName,
			IsGuest:      c.IsGuest,
			Participants: c.Participants,
			StartTime:    c.StartTime.String(),
			EndTime:      c.EndTime.String(),
			Date:         c.Date.Format(domain.DateFormat),
		})
	}

	return &SwapOptionsResponse{
		BookingID:             o.BookingID,
		CurrentEmployeeName:   o.CurrentEmployeeName,
		NewEmployeeName:       o.NewEmployeeName,
		Location:              o.Location,
		Category:              o.Category,
		StartTime:             o.StartTime.String(),
		EndTime:               o.EndTime.String(),
		HasCompatibleBookings: o.HasCompatibleBookings(),
		CompatibleBookings:    compatible,
		Reason:                o.Reason,
	}
}
