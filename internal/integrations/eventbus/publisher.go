package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// Publisher отправляет события бронирований
type Publisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
	Close() error
}

// KafkaPublisher публикует события в один топик, ключ сообщения = ID бронирования,
// поэтому события одного бронирования попадают в одну партицию по порядку
type KafkaPublisher struct {
	writer MessageWriter
	topic  string
	log    Logger
}

// NewKafkaPublisher создает публикатор поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, writeTimeout time.Duration, log Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeTimeout,
	}
	return NewKafkaPublisherWithWriter(writer, topic, log)
}

// NewKafkaPublisherWithWriter создает публикатор с заданным writer
func NewKafkaPublisherWithWriter(writer MessageWriter, topic string, log Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		log:    log,
	}
}

// Publish сериализует событие в JSON и пишет его в топик
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	eventID := uuid.NewString()

	payload, err := json.Marshal(newMessage(eventID, event))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeEvent, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(eventID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s type=%s booking=%d: %w", ErrPublish, p.topic, event.Type, event.BookingID, err)
	}

	p.log.Debug("eventbus: published %s booking=%d event_id=%s", event.Type, event.BookingID, eventID)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда брокеры не настроены
type NoopPublisher struct {
	log Logger
}

// NewNoopPublisher создает публикатор, который только логирует события
func NewNoopPublisher(log Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

// Publish логирует событие
func (p *NoopPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.log.Debug("eventbus: disabled, dropping %s booking=%d", event.Type, event.BookingID)
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
