package swap_employees

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	swapEmployees "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/swap_employees"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgIncompatible       = "бронирования несовместимы для обмена"
	msgInvalidInput       = "обмен невозможен для этих бронирований"
	msgConcurrentChange   = "бронирование изменено параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase SwapEmployeesUseCase
	logger  Logger
}

func NewHandler(useCase SwapEmployeesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/swap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/swap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, swapEmployees.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, swapEmployees.ErrIncompatibleSwap):
			h.logger.Warn("POST /bookings/swap - Incompatible bookings: %d, %d", req.BookingID1, req.BookingID2)
			handlers.RespondConflict(w, msgIncompatible)

		case errors.Is(err, swapEmployees.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrConcurrencyConflict):
			h.logger.Warn("POST /bookings/swap - Concurrent modification: %v", err)
			handlers.RespondConflict(w, msgConcurrentChange)

		default:
			h.logger.Error("POST /bookings/swap - Failed to swap: %d, %d, error=%v", req.BookingID1, req.BookingID2, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/swap - Employees swapped: %d <-> %d", req.BookingID1, req.BookingID2)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
