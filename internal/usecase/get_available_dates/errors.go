package get_available_dates

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("get_available_dates: activity not found")

	// ErrInvalidCapacity возвращается, когда число участников вне границ активности
	ErrInvalidCapacity = errors.New("get_available_dates: participants out of activity bounds")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_dates: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
