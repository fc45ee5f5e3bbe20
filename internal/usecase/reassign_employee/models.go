package reassign_employee

import "github.com/m04kA/SMC-ActivityBookingService/internal/domain"

// Request модель запроса на переназначение
type Request struct {
	BookingID  int64
	EmployeeID int64
}

// Response бронирование после переназначения
type Response struct {
	Booking      *domain.Booking
	EmployeeName string
}
