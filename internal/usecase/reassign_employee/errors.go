package reassign_employee

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reassign_employee: booking not found")

	// ErrEmployeeNotFound возвращается, когда пользователь не найден или не является сотрудником
	ErrEmployeeNotFound = errors.New("reassign_employee: employee not found")

	// ErrIncompatibleSwap возвращается, когда сотрудник не может взять бронирование
	ErrIncompatibleSwap = errors.New("reassign_employee: employee cannot take the booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reassign_employee: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reassign_employee: internal error")
)
