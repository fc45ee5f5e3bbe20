package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ActivityID   int64     // ID активности
	Date         time.Time // Дата (без времени)
	Participants *int      // Число участников, по умолчанию минимум активности
}

// Response сетка слотов дня: и доступные, и недоступные
type Response struct {
	ActivityID   int64
	Date         time.Time
	Participants int
	Slots        []domain.TimeSlot
}

// AvailableCount количество доступных слотов
func (r *Response) AvailableCount() int {
	count := 0
	for _, s := range r.Slots {
		if s.Available {
			count++
		}
	}
	return count
}
