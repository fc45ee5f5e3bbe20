package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgActivityNotFound   = "активность не найдена"
	msgInvalidCapacity    = "число участников вне допустимых границ активности"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для бронирования этого слота"
	msgNoEmployee         = "нет свободного сотрудника на выбранное время"
	msgInvalidInput       = "некорректные данные бронирования"
	msgConcurrentChange   = "бронирование изменено параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		h.respondParseError(w, err)
		return
	}

	h.execute(w, r, "POST /bookings", useCaseReq)
}

// HandleGuest POST /api/v1/bookings/guest
func (h *Handler) HandleGuest(w http.ResponseWriter, r *http.Request) {
	var req CreateGuestBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/guest - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/guest - Failed to parse request: %v", err)
		h.respondParseError(w, err)
		return
	}

	h.execute(w, r, "POST /bookings/guest", useCaseReq)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *createBooking.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNoEmployeeAvailable):
			h.logger.Warn("%s - No employee available: activity_id=%d, date=%s, time=%s",
				route, req.ActivityID, req.Date.Format(domain.DateFormat), req.StartTime)
			handlers.RespondConflict(w, msgNoEmployee)

		case errors.Is(err, createBooking.ErrActivityNotFound):
			h.logger.Warn("%s - Activity not found: activity_id=%d", route, req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, createBooking.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrConcurrencyConflict):
			h.logger.Warn("%s - Concurrent modification: %v", route, err)
			handlers.RespondConflict(w, msgConcurrentChange)

		default:
			h.logger.Error("%s - Failed to create booking: activity_id=%d, error=%v", route, req.ActivityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%d, activity_id=%d, employee_id=%d",
		route, result.Booking.ID, req.ActivityID, *result.Booking.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondParseError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidTime) {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	handlers.RespondBadRequest(w, msgInvalidDate)
}
