package reassign_employee

import (
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings/models"
	reassignEmployee "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/reassign_employee"
)

// ReassignRequest HTTP request model
type ReassignRequest struct {
	EmployeeID int64 `json:"employeeId"`
}

// ReassignResponse HTTP response model
type ReassignResponse struct {
	models.BookingResponse
	EmployeeName string `json:"employeeName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reassignEmployee.Response) *ReassignResponse {
	return &ReassignResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		EmployeeName:    resp.EmployeeName,
	}
}
