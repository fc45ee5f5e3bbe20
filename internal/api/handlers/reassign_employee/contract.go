package reassign_employee

import (
	"context"

	reassignEmployee "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/reassign_employee"
)

type ReassignEmployeeUseCase interface {
	Execute(ctx context.Context, req *reassignEmployee.Request) (*reassignEmployee.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
