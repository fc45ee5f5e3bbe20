package workwindows

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// WorkWindowRepository интерфейс репозитория рабочих окон
type WorkWindowRepository interface {
	Create(ctx context.Context, window *domain.WorkWindow) (*domain.WorkWindow, error)
	GetByEmployeeAndDateRange(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.WorkWindow, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
