package swap_employees

import (
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings/models"
	swapEmployees "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/swap_employees"
)

// SwapRequest HTTP request model
type SwapRequest struct {
	BookingID1 int64 `json:"bookingId1"`
	BookingID2 int64 `json:"bookingId2"`
}

// SwapResponse HTTP response model
type SwapResponse struct {
	Bookings []models.BookingResponse `json:"bookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SwapRequest) ToUseCaseRequest() *swapEmployees.Request {
	return &swapEmployees.Request{
		BookingID1: r.BookingID1,
		BookingID2: r.BookingID2,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *swapEmployees.Response) *SwapResponse {
	return &SwapResponse{
		Bookings: []models.BookingResponse{
			*models.FromDomainBooking(resp.First),
			*models.FromDomainBooking(resp.Second),
		},
	}
}
