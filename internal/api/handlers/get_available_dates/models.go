package get_available_dates

import (
	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_dates"
)

// DatesResponse HTTP response model
type DatesResponse struct {
	ActivityID  int64    `json:"activityId"`
	Month       string   `json:"month"` // "2025-10"
	Dates       []string `json:"dates"`
	Approximate bool     `json:"approximate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *DatesResponse {
	dates := make([]string, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	return &DatesResponse{
		ActivityID:  resp.ActivityID,
		Month:       resp.Month.Format("2006-01"),
		Dates:       dates,
		Approximate: resp.Approximate,
	}
}
