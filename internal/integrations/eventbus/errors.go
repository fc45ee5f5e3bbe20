package eventbus

import "errors"

var (
	// ErrEncodeEvent возвращается, когда событие не удалось сериализовать
	ErrEncodeEvent = errors.New("eventbus: failed to encode event")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("eventbus: failed to publish event")
)
