package create_work_window

import (
	"context"

	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
)

type WorkWindowService interface {
	Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
