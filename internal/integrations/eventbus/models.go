package eventbus

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// Message тело события бронирования в Kafka
type Message struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	BookingID  int64     `json:"booking_id"`
	ActivityID int64     `json:"activity_id"`
	EmployeeID *int64    `json:"employee_id,omitempty"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	RelatedID  *int64    `json:"related_booking_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newMessage(eventID string, e domain.BookingEvent) Message {
	return Message{
		EventID:    eventID,
		EventType:  string(e.Type),
		BookingID:  e.BookingID,
		ActivityID: e.ActivityID,
		EmployeeID: e.EmployeeID,
		Date:       e.Date.Format(domain.DateFormat),
		StartTime:  e.StartTime.String(),
		EndTime:    e.EndTime.String(),
		Status:     string(e.Status),
		RelatedID:  e.RelatedID,
		OccurredAt: e.OccurredAt.UTC(),
	}
}
