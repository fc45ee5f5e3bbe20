package get_activity_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

const (
	msgInvalidActivityID = "некорректный ID активности"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/bookings?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := handlers.PathInt64(r, "activityId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /activities/{id}/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetActivityBookings(r.Context(), activityID, date)
	if err != nil {
		h.logger.Error("GET /activities/{id}/bookings - Failed to get bookings: activity_id=%d, error=%v", activityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /activities/{id}/bookings - Bookings retrieved: activity_id=%d, date=%s, count=%d",
		activityID, date.Format(domain.DateFormat), len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
