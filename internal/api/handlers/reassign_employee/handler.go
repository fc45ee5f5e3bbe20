package reassign_employee

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	reassignEmployee "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/reassign_employee"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgIncompatible       = "сотрудник не может взять это бронирование"
	msgInvalidInput       = "бронирование нельзя переназначить"
	msgConcurrentChange   = "бронирование изменено параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase ReassignEmployeeUseCase
	logger  Logger
}

func NewHandler(useCase ReassignEmployeeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/employee
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ReassignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/employee - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reassignEmployee.Request{
		BookingID:  bookingID,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reassignEmployee.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reassignEmployee.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, reassignEmployee.ErrIncompatibleSwap):
			h.logger.Warn("PUT /bookings/{id}/employee - Employee cannot take booking: booking_id=%d, employee_id=%d",
				bookingID, req.EmployeeID)
			handlers.RespondConflict(w, msgIncompatible)

		case errors.Is(err, reassignEmployee.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrConcurrencyConflict):
			h.logger.Warn("PUT /bookings/{id}/employee - Concurrent modification: %v", err)
			handlers.RespondConflict(w, msgConcurrentChange)

		default:
			h.logger.Error("PUT /bookings/{id}/employee - Failed to reassign: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id}/employee - Employee reassigned: booking_id=%d, employee_id=%d",
		bookingID, req.EmployeeID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
