package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidActivityID   = "некорректный ID активности"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParticipants = "некорректное число участников"
	msgActivityNotFound    = "активность не найдена"
	msgInvalidCapacity     = "число участников вне допустимых границ активности"
	msgDateInPast          = "дата в прошлом"
	msgDateTooFar          = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/available-slots
// Query params: date (required, YYYY-MM-DD), participants (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := handlers.PathInt64(r, "activityId")
	if err != nil {
		h.logger.Warn("GET /activities/{id}/available-slots - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /activities/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	participants, err := handlers.QueryOptionalInt(r, "participants")
	if err != nil {
		h.logger.Warn("GET /activities/{id}/available-slots - Invalid participants: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipants)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ActivityID:   activityID,
		Date:         date,
		Participants: participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrActivityNotFound):
			h.logger.Warn("GET /activities/{id}/available-slots - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /activities/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParticipants)

		default:
			h.logger.Error("GET /activities/{id}/available-slots - Failed to get slots: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /activities/{id}/available-slots - Slots retrieved: activity_id=%d, available=%d/%d",
		activityID, result.AvailableCount(), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
