package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_dates"
)

const (
	msgInvalidActivityID   = "некорректный ID активности"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParticipants = "некорректное число участников"
	msgActivityNotFound    = "активность не найдена"
	msgInvalidCapacity     = "число участников вне допустимых границ активности"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/available-dates
// Query params: date (required, любой день месяца), participants (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := handlers.PathInt64(r, "activityId")
	if err != nil {
		h.logger.Warn("GET /activities/{id}/available-dates - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /activities/{id}/available-dates - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	participants, err := handlers.QueryOptionalInt(r, "participants")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParticipants)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		ActivityID:    activityID,
		ReferenceDate: date,
		Participants:  participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrActivityNotFound):
			h.logger.Warn("GET /activities/{id}/available-dates - Activity not found: activity_id=%d", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParticipants)

		default:
			h.logger.Error("GET /activities/{id}/available-dates - Failed to get dates: activity_id=%d, error=%v",
				activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /activities/{id}/available-dates - Dates retrieved: activity_id=%d, count=%d",
		activityID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
