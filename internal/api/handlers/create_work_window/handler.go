package create_work_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное рабочее окно"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgOverlap            = "рабочее окно пересекается с существующим"
	msgConcurrentChange   = "рабочие окна сотрудника изменены параллельным запросом, повторите попытку"
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

// Handle POST /api/v1/work-windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /work-windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	window, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workwindows.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, workwindows.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, workwindows.ErrWindowOverlap):
			h.logger.Warn("POST /work-windows - Overlap: employee_id=%d, date=%s", req.EmployeeID, req.WorkDate)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, txmanager.ErrConcurrencyConflict):
			h.logger.Warn("POST /work-windows - Concurrent modification: %v", err)
			handlers.RespondConflict(w, msgConcurrentChange)

		default:
			h.logger.Error("POST /work-windows - Failed to create window: employee_id=%d, error=%v", req.EmployeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /work-windows - Window created: id=%d, employee_id=%d", window.ID, window.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, window)
}
