package check_employee_swap

import (
	"context"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	checkEmployeeSwap "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/check_employee_swap"
)

type CheckEmployeeSwapUseCase interface {
	Execute(ctx context.Context, req *checkEmployeeSwap.Request) (*domain.SwapAssessment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
