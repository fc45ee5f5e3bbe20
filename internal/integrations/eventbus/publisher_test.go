package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	at := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	event := domain.BookingEvent{
		Type:       domain.EventBookingSwapped,
		BookingID:  17,
		ActivityID: 3,
		EmployeeID: ptr.Ptr(int64(5)),
		Date:       time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  types.MustTimeString("09:00"),
		EndTime:    types.MustTimeString("11:00"),
		Status:     domain.StatusConfirmed,
		OccurredAt: at,
		RelatedID:  ptr.Ptr(int64(18)),
	}

	t.Run("message carries key, headers and payload", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := NewKafkaPublisherWithWriter(writer, "bookings", nopLogger{})

		require.NoError(t, publisher.Publish(context.Background(), event))
		require.Len(t, writer.messages, 1)

		msg := writer.messages[0]
		assert.Equal(t, "17", string(msg.Key))
		assert.Equal(t, "booking.swapped", header(msg, "event_type"))
		assert.NotEmpty(t, header(msg, "event_id"))

		var body Message
		require.NoError(t, json.Unmarshal(msg.Value, &body))
		assert.Equal(t, header(msg, "event_id"), body.EventID)
		assert.Equal(t, "2024-07-02", body.Date)
		assert.Equal(t, "09:00", body.StartTime)
		assert.Equal(t, int64(18), *body.RelatedID)
	})

	t.Run("broker failure is wrapped", func(t *testing.T) {
		brokerErr := errors.New("leader not available")
		publisher := NewKafkaPublisherWithWriter(&recordingWriter{err: brokerErr}, "bookings", nopLogger{})

		err := publisher.Publish(context.Background(), event)
		assert.ErrorIs(t, err, ErrPublish)
		assert.ErrorIs(t, err, brokerErr)
	})

	t.Run("close closes the writer", func(t *testing.T) {
		writer := &recordingWriter{}
		require.NoError(t, NewKafkaPublisherWithWriter(writer, "bookings", nopLogger{}).Close())
		assert.True(t, writer.closed)
	})
}
