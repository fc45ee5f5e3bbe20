package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
// Заполняется либо CustomerID (авторизованный клиент), либо Guest
type Request struct {
	CustomerID   *int64           // ID клиента из JWT
	Guest        *GuestContact    // Контакты гостя
	ActivityID   int64            // ID активности
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала (например, "10:00")
	Participants int              // Число участников
	Notes        *string          // Дополнительные заметки (опционально)
}

// GuestContact контакты гостя без аккаунта
type GuestContact struct {
	Name  string
	Phone string
	Email *string
}

// Response созданное бронирование с назначенным сотрудником
type Response struct {
	Booking      *domain.Booking
	ActivityName string
	EmployeeName string
}
