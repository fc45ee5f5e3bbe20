package get_swap_options

import (
	"context"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	getSwapOptions "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_swap_options"
)

type GetSwapOptionsUseCase interface {
	Execute(ctx context.Context, req *getSwapOptions.Request) (*domain.SwapOptions, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
