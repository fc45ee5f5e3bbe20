package swap_employees

import (
	"context"

	swapEmployees "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/swap_employees"
)

type SwapEmployeesUseCase interface {
	Execute(ctx context.Context, req *swapEmployees.Request) (*swapEmployees.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
