package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Participants != nil && *req.Participants <= 0 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	return nil
}

// resolveParticipants число участников запроса или минимум активности
func resolveParticipants(activity *domain.Activity, requested *int) (int, error) {
	if requested == nil {
		return activity.DefaultParticipants(), nil
	}

	if !activity.AcceptsParticipants(*requested) {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidCapacity, *requested, activity.MinParticipants, activity.MaxParticipants)
	}

	return *requested, nil
}

// validateDate дата не в прошлом и не дальше MaxAdvanceBookingDays
func validateDate(date time.Time, now time.Time) error {
	if domain.IsBeforeDay(date, now) {
		return ErrInvalidDate
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, domain.MaxAdvanceBookingDays)
	if domain.IsBeforeDay(maxDate, date) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.MaxAdvanceBookingDays)
	}

	return nil
}
