package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// WorkWindowRepository интерфейс репозитория рабочих окон
type WorkWindowRepository interface {
	// GetByDate получает рабочие окна всех сотрудников на дату
	GetByDate(ctx context.Context, date time.Time) ([]*domain.WorkWindow, error)
}

// SchedulingEngine интерфейс движка назначения сотрудников
type SchedulingEngine interface {
	EligibleEmployees(ctx context.Context) ([]*domain.User, error)
	LoadDays(ctx context.Context, employees []*domain.User, date time.Time) ([]*scheduling.EmployeeDay, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс метрик слотов
type MetricsRecorder interface {
	ObserveSlots(available, unavailable int)
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
