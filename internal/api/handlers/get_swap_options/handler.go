package get_swap_options

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	getSwapOptions "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_swap_options"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgBookingNotFound   = "бронирование не найдено"
	msgEmployeeNotFound  = "сотрудник не найден"
	msgInvalidInput      = "некорректный запрос вариантов обмена"
)

type Handler struct {
	useCase GetSwapOptionsUseCase
	logger  Logger
}

func NewHandler(useCase GetSwapOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/swap-options/{employeeId}
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

	result, err := h.useCase.Execute(r.Context(), &getSwapOptions.Request{
		BookingID:  bookingID,
		EmployeeID: employeeID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSwapOptions.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, getSwapOptions.ErrEmployeeNotFound):
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, getSwapOptions.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /bookings/{id}/swap-options/{employeeId} - Failed: booking_id=%d, employee_id=%d, error=%v",
				bookingID, employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/swap-options/{employeeId} - booking_id=%d, employee_id=%d, options=%d",
		bookingID, employeeID, len(result.CompatibleBookings))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
