package create_booking

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("create_booking: activity not found")

	// ErrInvalidCapacity возвращается, когда число участников вне границ активности
	ErrInvalidCapacity = errors.New("create_booking: participants out of activity bounds")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается, когда до начала меньше MinAdvanceBookingHours
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrDateTooFarInFuture возвращается, когда дата дальше MaxAdvanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrNoEmployeeAvailable возвращается, когда ни один сотрудник не может взять бронирование
	ErrNoEmployeeAvailable = errors.New("create_booking: no employee available for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
