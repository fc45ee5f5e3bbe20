package get_available_slots

import "errors"

var (
	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("get_available_slots: activity not found")

	// ErrInvalidCapacity возвращается, когда число участников вне границ активности
	ErrInvalidCapacity = errors.New("get_available_slots: participants out of activity bounds")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата дальше окна предварительного бронирования
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
