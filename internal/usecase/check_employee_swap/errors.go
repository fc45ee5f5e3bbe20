package check_employee_swap

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_employee_swap: booking not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден или не имеет роли сотрудника
	ErrEmployeeNotFound = errors.New("check_employee_swap: employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_employee_swap: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_employee_swap: internal error")
)
