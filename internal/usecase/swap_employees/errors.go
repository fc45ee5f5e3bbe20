package swap_employees

import "errors"

var (
	// ErrBookingNotFound возвращается, когда одно из бронирований не найдено
	ErrBookingNotFound = errors.New("swap_employees: booking not found")

	// ErrIncompatibleSwap возвращается, когда активности бронирований различаются категорией или местом
	ErrIncompatibleSwap = errors.New("swap_employees: bookings are not compatible")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("swap_employees: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("swap_employees: internal error")
)
