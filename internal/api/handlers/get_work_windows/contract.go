package get_work_windows

import (
	"context"

	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
)

type WorkWindowService interface {
	ListForEmployee(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
