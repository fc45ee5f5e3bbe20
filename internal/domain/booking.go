package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus converts a case-insensitive string into a BookingStatus
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return status, true
	default:
		return "", false
	}
}

// PaymentStatus is tracked independently of the booking status
type PaymentStatus string

const (
	PaymentUnpaid            PaymentStatus = "UNPAID"
	PaymentDepositPaid       PaymentStatus = "DEPOSIT_PAID"
	PaymentFullyPaid         PaymentStatus = "FULLY_PAID"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentFullyRefunded     PaymentStatus = "FULLY_REFUNDED"
)

// Booking is a reservation of an activity on a date.
// Exactly one of CustomerID and the guest contact is populated.
// ActivityID and EmployeeID are plain references resolved through their stores.
type Booking struct {
	ID           int64
	ActivityID   int64
	CustomerID   *int64
	GuestName    *string
	GuestPhone   *string
	GuestEmail   *string
	EmployeeID   *int64
	BookingDate  time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Participants int
	Status       BookingStatus
	Notes        *string

	PaymentStatus   PaymentStatus
	TotalPrice      float64
	DepositAmount   float64
	PaidAmount      float64
	RemainingAmount float64
	ConfirmedAt     *time.Time
	PaymentDeadline *time.Time
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGuest returns true for bookings made without an account
func (b *Booking) IsGuest() bool {
	return b.CustomerID == nil
}

// CustomerDisplayName returns the guest name for guest bookings
func (b *Booking) CustomerDisplayName() string {
	if b.GuestName != nil {
		return *b.GuestName
	}
	return ""
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true for completed or cancelled bookings
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanTransitionTo validates PENDING -> CONFIRMED -> COMPLETED and cancellation of non-terminal bookings
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusCompleted:
		return b.Status == StatusConfirmed
	case StatusCancelled:
		return b.CanBeCancelled()
	default:
		return false
	}
}

// CanAcceptPayment returns true while a confirmed booking is within its payment deadline and not fully paid
func (b *Booking) CanAcceptPayment(now time.Time) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	if b.PaymentDeadline != nil && now.After(*b.PaymentDeadline) {
		return false
	}
	return b.PaymentStatus != PaymentFullyPaid
}

// IsAssignedTo returns true if the booking is served by the employee
func (b *Booking) IsAssignedTo(employeeID int64) bool {
	return b.EmployeeID != nil && *b.EmployeeID == employeeID
}

// Overlaps returns true if the booking interval overlaps [start, end)
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return TimesOverlap(b.StartTime, b.EndTime, start, end)
}

// BookingEvent is published after a booking changes
type BookingEvent struct {
	Type       BookingEventType
	BookingID  int64
	ActivityID int64
	EmployeeID *int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     BookingStatus
	OccurredAt time.Time
	RelatedID  *int64 // Вторая сторона обмена сотрудниками
}

// BookingEventType type of a booking event
type BookingEventType string

const (
	EventBookingCreated    BookingEventType = "booking.created"
	EventBookingCancelled  BookingEventType = "booking.cancelled"
	EventBookingConfirmed  BookingEventType = "booking.confirmed"
	EventBookingCompleted  BookingEventType = "booking.completed"
	EventBookingReassigned BookingEventType = "booking.reassigned"
	EventBookingSwapped    BookingEventType = "booking.swapped"
	EventBookingExpired    BookingEventType = "booking.expired"
)

// NewBookingEvent builds an event snapshot of a booking
func NewBookingEvent(eventType BookingEventType, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		ActivityID: b.ActivityID,
		EmployeeID: b.EmployeeID,
		Date:       b.BookingDate,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		OccurredAt: at,
	}
}
