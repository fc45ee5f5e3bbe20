package swap_employees

import "github.com/m04kA/SMC-ActivityBookingService/internal/domain"

// Request модель запроса на обмен сотрудниками
type Request struct {
	BookingID1 int64
	BookingID2 int64
}

// Response бронирования после обмена
type Response struct {
	First  *domain.Booking
	Second *domain.Booking
}
