package get_swap_options

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("get_swap_options: booking not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или не имеет роли сотрудника
	ErrEmployeeNotFound = errors.New("get_swap_options: employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_swap_options: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_swap_options: internal error")
)
