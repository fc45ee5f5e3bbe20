package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityID must be positive", ErrInvalidInput)
	}

	if req.ReferenceDate.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Participants != nil && *req.Participants <= 0 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	return nil
}

// validateParticipants число участников в границах активности, если указано
func validateParticipants(activity *domain.Activity, requested *int) error {
	if requested == nil || activity.AcceptsParticipants(*requested) {
		return nil
	}
	return fmt.Errorf("%w: %d not in [%d, %d]",
		ErrInvalidCapacity, *requested, activity.MinParticipants, activity.MaxParticipants)
}
