package get_available_slots

import (
	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ActivityID     int64          `json:"activityId"`
	Date           string         `json:"date"`
	Participants   int            `json:"participants"`
	AvailableCount int            `json:"availableCount"`
	Slots          []SlotResponse `json:"slots"`
}

// SlotResponse один слот сетки
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Available: s.Available,
		})
	}

	return &SlotsResponse{
		ActivityID:     resp.ActivityID,
		Date:           resp.Date.Format(domain.DateFormat),
		Participants:   resp.Participants,
		AvailableCount: resp.AvailableCount(),
		Slots:          slots,
	}
}
