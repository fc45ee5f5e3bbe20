package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if (req.CustomerID == nil) == (req.Guest == nil) {
		return fmt.Errorf("%w: exactly one of customer and guest contact is required", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Guest != nil {
		if err := validateGuest(req.Guest); err != nil {
			return err
		}
	}

	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Participants <= 0 {
		return fmt.Errorf("%w: participants must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

func validateGuest(guest *GuestContact) error {
	name := strings.TrimSpace(guest.Name)
	phone := strings.TrimSpace(guest.Phone)

	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name longer than %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}
	if phone == "" {
		return fmt.Errorf("%w: guest phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxGuestPhoneLength {
		return fmt.Errorf("%w: guest phone longer than %d characters", ErrInvalidInput, domain.MaxGuestPhoneLength)
	}
	if guest.Email != nil && !strings.Contains(*guest.Email, "@") {
		return fmt.Errorf("%w: invalid guest email", ErrInvalidInput)
	}

	return nil
}

// validateBookingTime начало не раньше чем через MinAdvanceBookingHours и не дальше MaxAdvanceBookingDays
func validateBookingTime(date time.Time, start types.TimeString, now time.Time) error {
	if domain.IsBeforeDay(date, now) {
		return ErrInvalidDate
	}

	startAt := start.OnDate(domain.DateIn(date, now.Location()))
	minStart := now.Add(domain.MinAdvanceBookingHours * time.Hour)
	if startAt.Before(minStart) {
		return fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, domain.MinAdvanceBookingHours)
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, domain.MaxAdvanceBookingDays)
	if domain.IsBeforeDay(maxDate, date) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, domain.MaxAdvanceBookingDays)
	}

	return nil
}
