package get_work_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidRange      = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	service WorkWindowService
	logger  Logger
}

func NewHandler(service WorkWindowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/work-windows?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.ListForEmployee(r.Context(), &models.ListWindowsRequest{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		if errors.Is(err, workwindows.ErrInvalidInput) {
			h.logger.Warn("GET /employees/{id}/work-windows - %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /employees/{id}/work-windows - Failed to list windows: employee_id=%d, error=%v", employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
