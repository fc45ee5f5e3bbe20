package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

type memoryBookings struct {
	items   map[int64]*domain.Booking
	expired []*domain.Booking
	err     error
}

func (m *memoryBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memoryBookings) GetByCustomerID(_ context.Context, customerID int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range m.items {
		if b.CustomerID != nil && *b.CustomerID == customerID {
			result = append(result, b)
		}
	}
	return result, m.err
}

func (m *memoryBookings) GetByActivityAndDate(_ context.Context, activityID int64, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range m.items {
		if b.ActivityID == activityID && domain.SameDay(b.BookingDate, date) {
			result = append(result, b)
		}
	}
	return result, m.err
}

func (m *memoryBookings) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	m.items[id].Status = status
	return nil
}

func (m *memoryBookings) Confirm(_ context.Context, id int64, confirmedAt, deadline time.Time) error {
	b := m.items[id]
	b.Status = domain.StatusConfirmed
	b.ConfirmedAt = &confirmedAt
	b.PaymentDeadline = &deadline
	return nil
}

func (m *memoryBookings) Cancel(_ context.Context, id int64, at time.Time) error {
	b := m.items[id]
	b.Status = domain.StatusCancelled
	b.CancelledAt = &at
	return nil
}

func (m *memoryBookings) CancelExpiredUnpaid(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return m.expired, m.err
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []domain.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

type expiredCounter struct{ total int }

func (c *expiredCounter) ObserveExpired(n int) { c.total += n }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

var now = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func booking(id int64, customerID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ActivityID:      3,
		CustomerID:      ptr.Ptr(customerID),
		EmployeeID:      ptr.Ptr(int64(9)),
		BookingDate:     time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		StartTime:       types.MustTimeString("09:00"),
		EndTime:         types.MustTimeString("11:00"),
		Participants:    2,
		Status:          status,
		PaymentStatus:   domain.PaymentUnpaid,
		TotalPrice:      100,
		RemainingAmount: 100,
	}
}

func newService(items ...*domain.Booking) (*Service, *memoryBookings, *recordingPublisher, *expiredCounter) {
	repo := &memoryBookings{items: make(map[int64]*domain.Booking)}
	for _, b := range items {
		repo.items[b.ID] = b
	}
	publisher := &recordingPublisher{}
	counter := &expiredCounter{}

	svc := NewService(repo, passthroughTx{}, publisher, counter, nopLogger{})
	svc.timeProvider = fixedTime(now)
	return svc, repo, publisher, counter
}

var (
	owner    = domain.Principal{UserID: 7, Roles: []domain.Role{domain.RoleUser}}
	stranger = domain.Principal{UserID: 8, Roles: []domain.Role{domain.RoleUser}}
	guide    = domain.Principal{UserID: 9, Roles: []domain.Role{domain.RoleEmployee}}
	admin    = domain.Principal{UserID: 1, Roles: []domain.Role{domain.RoleAdmin}}
)

func TestService_GetByID(t *testing.T) {
	svc, _, _, _ := newService(booking(1, owner.UserID, domain.StatusPending))
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, 1, owner)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-05", resp.BookingDate)
	assert.Equal(t, "09:00", resp.StartTime)

	_, err = svc.GetByID(ctx, 1, guide)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 1, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 42, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetMyBookings(t *testing.T) {
	svc, _, _, _ := newService(
		booking(1, owner.UserID, domain.StatusPending),
		booking(2, stranger.UserID, domain.StatusPending),
	)

	resp, err := svc.GetMyBookings(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestService_GetActivityBookings(t *testing.T) {
	svc, _, _, _ := newService(booking(1, owner.UserID, domain.StatusCancelled))

	resp, err := svc.GetActivityBookings(context.Background(), 3, time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetActivityBookings(context.Background(), 0, now)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm sets payment deadline", func(t *testing.T) {
		svc, repo, publisher, _ := newService(booking(1, owner.UserID, domain.StatusPending))

		resp, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "confirmed"})
		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
		require.NotNil(t, repo.items[1].PaymentDeadline)
		assert.Equal(t, now.Add(24*time.Hour), *repo.items[1].PaymentDeadline)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, domain.EventBookingConfirmed, publisher.events[0].Type)
	})

	t.Run("confirm happens once", func(t *testing.T) {
		svc, _, publisher, _ := newService(booking(1, owner.UserID, domain.StatusConfirmed))

		_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "CONFIRMED"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, publisher.events)
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		svc, _, _, _ := newService(booking(1, owner.UserID, domain.StatusPending))

		_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "COMPLETED"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("confirmed completes", func(t *testing.T) {
		svc, repo, publisher, _ := newService(booking(1, owner.UserID, domain.StatusConfirmed))

		_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "COMPLETED"})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, repo.items[1].Status)
		assert.Equal(t, domain.EventBookingCompleted, publisher.events[0].Type)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _, _ := newService(booking(1, owner.UserID, domain.StatusPending))

		_, err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "ARCHIVED"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels", func(t *testing.T) {
		svc, repo, publisher, _ := newService(booking(1, owner.UserID, domain.StatusConfirmed))

		resp, err := svc.Cancel(ctx, 1, owner)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.NotNil(t, resp.CancelledAt)
		assert.Equal(t, domain.StatusCancelled, repo.items[1].Status)
		assert.Equal(t, domain.EventBookingCancelled, publisher.events[0].Type)
	})

	t.Run("employee is not enough", func(t *testing.T) {
		svc, _, _, _ := newService(booking(1, owner.UserID, domain.StatusPending))

		_, err := svc.Cancel(ctx, 1, guide)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("terminal booking", func(t *testing.T) {
		svc, _, publisher, _ := newService(booking(1, owner.UserID, domain.StatusCompleted))

		_, err := svc.Cancel(ctx, 1, admin)
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, publisher.events)
	})
}

func TestService_CanAcceptPayment(t *testing.T) {
	confirmed := booking(1, owner.UserID, domain.StatusConfirmed)
	confirmed.PaymentDeadline = ptr.Ptr(now.Add(time.Hour))

	late := booking(2, owner.UserID, domain.StatusConfirmed)
	late.PaymentDeadline = ptr.Ptr(now.Add(-time.Minute))

	svc, _, _, _ := newService(confirmed, late, booking(3, owner.UserID, domain.StatusPending))
	ctx := context.Background()

	resp, err := svc.CanAcceptPayment(ctx, 1, owner)
	require.NoError(t, err)
	assert.True(t, resp.CanAcceptPayment)

	resp, err = svc.CanAcceptPayment(ctx, 2, owner)
	require.NoError(t, err)
	assert.False(t, resp.CanAcceptPayment)

	resp, err = svc.CanAcceptPayment(ctx, 3, admin)
	require.NoError(t, err)
	assert.False(t, resp.CanAcceptPayment)

	_, err = svc.CanAcceptPayment(ctx, 1, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_ExpireUnpaid(t *testing.T) {
	svc, repo, publisher, counter := newService()
	repo.expired = []*domain.Booking{
		booking(4, owner.UserID, domain.StatusCancelled),
		booking(5, owner.UserID, domain.StatusCancelled),
	}

	n, err := svc.ExpireUnpaid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, counter.total)
	require.Len(t, publisher.events, 2)
	assert.Equal(t, domain.EventBookingExpired, publisher.events[1].Type)

	repo.err = errors.New("connection reset")
	_, err = svc.ExpireUnpaid(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
