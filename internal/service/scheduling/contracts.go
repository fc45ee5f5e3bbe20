package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// BookingRepository источник бронирований сотрудника
type BookingRepository interface {
	// GetByEmployeeAndDate возвращает неотмененные бронирования сотрудника на дату
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.Booking, error)
}

// ActivityRepository источник активностей вместе с категориями
type ActivityRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Activity, error)
}

// EmployeeDirectory справочник сотрудников по ролям
type EmployeeDirectory interface {
	GetByRole(ctx context.Context, role domain.Role, enabledOnly bool) ([]*domain.User, error)
}

// Recorder метрики исходов назначения
type Recorder interface {
	ObserveAssignment(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
