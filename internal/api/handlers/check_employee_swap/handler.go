package check_employee_swap

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	checkEmployeeSwap "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/check_employee_swap"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgBookingNotFound   = "бронирование не найдено"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgAlreadyAssigned   = "сотрудник уже назначен на это бронирование"
)

type Handler struct {
	useCase CheckEmployeeSwapUseCase
	logger  Logger
}

func NewHandler(useCase CheckEmployeeSwapUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/swap-check/{employeeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkEmployeeSwap.Request{
		BookingID:  bookingID,
		EmployeeID: employeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkEmployeeSwap.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, checkEmployeeSwap.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, checkEmployeeSwap.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgAlreadyAssigned)

		default:
			h.logger.Error("GET /bookings/{id}/swap-check/{employeeId} - Failed: booking_id=%d, employee_id=%d, error=%v",
				bookingID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/swap-check/{employeeId} - booking_id=%d, employee_id=%d, swap_needed=%t, can_swap=%t",
		bookingID, employeeID, result.SwapNeeded, result.CanSwap)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
