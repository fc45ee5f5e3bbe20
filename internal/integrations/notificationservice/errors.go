package notificationservice

import "errors"

var (
	// ErrInvalidRequest возвращается, когда сервис уведомлений отклонил запрос (невалидный телефон и т.п.)
	ErrInvalidRequest = errors.New("notificationservice client: request rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Бронирование остается в силе, ссылку на оплату можно отправить повторно
	ErrServiceDegraded = errors.New("notificationservice unavailable: graceful degradation applied")
)
