package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// WorkWindowRepository интерфейс репозитория рабочих окон
type WorkWindowRepository interface {
	// GetInDateRange окна всех сотрудников, упорядоченные по дате, сотруднику и началу
	GetInDateRange(ctx context.Context, from, to time.Time) ([]*domain.WorkWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDateRangeExcludingStatus(ctx context.Context, from, to time.Time, status domain.BookingStatus) ([]*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
