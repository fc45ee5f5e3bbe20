package get_swap_options

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
	swapEmployees "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/swap_employees"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

type store struct {
	bookings   []*domain.Booking
	activities map[int64]*domain.Activity
	users      map[int64]*domain.User
}

func (s *store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *store) UpdateEmployee(_ context.Context, id int64, employeeID int64) error {
	for _, b := range s.bookings {
		if b.ID == id {
			b.EmployeeID = &employeeID
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (s *store) GetByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.IsAssignedTo(employeeID) && domain.SameDay(b.BookingDate, date) && !b.IsCancelled() {
			result = append(result, b)
		}
	}
	return result, nil
}

type activityStore struct{ s *store }

func (a activityStore) GetByID(_ context.Context, id int64) (*domain.Activity, error) {
	if activity, ok := a.s.activities[id]; ok {
		return activity, nil
	}
	return nil, activityRepo.ErrActivityNotFound
}

func (a activityStore) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.Activity, error) {
	result := make(map[int64]*domain.Activity, len(ids))
	for _, id := range ids {
		if activity, ok := a.s.activities[id]; ok {
			result[id] = activity
		}
	}
	return result, nil
}

type userStore struct{ s *store }

func (u userStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := u.s.users[id]; ok {
		return user, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (u userStore) GetByRole(_ context.Context, role domain.Role, _ bool) ([]*domain.User, error) {
	result := make([]*domain.User, 0)
	for _, user := range u.s.users {
		if user.HasRole(role) {
			result = append(result, user)
		}
	}
	return result, nil
}

type readOnlyTx struct{}

func (readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type serialTx struct{}

func (serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.BookingEvent) error { return nil }

type nopRecorder struct{}

func (nopRecorder) ObserveAssignment(string) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var day = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

func adventure(id int64, name string, categoryID int64) *domain.Activity {
	return &domain.Activity{
		ID:              id,
		Name:            name,
		CategoryID:      ptr.Ptr(categoryID),
		Category:        &domain.ActivityCategory{ID: categoryID, Name: "Adventure", MaxParticipantsPerGuide: 10},
		Location:        "Bucegi Park",
		DurationMinutes: 120,
		MinParticipants: 1,
		MaxParticipants: 10,
	}
}

func booking(id, activityID, employeeID int64, start, end string, participants int) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		ActivityID:   activityID,
		EmployeeID:   ptr.Ptr(employeeID),
		BookingDate:  day,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		Participants: participants,
		Status:       domain.StatusConfirmed,
	}
}

func guestBooking(id, activityID, employeeID int64, start, end string, participants int, guest string) *domain.Booking {
	b := booking(id, activityID, employeeID, start, end, participants)
	b.GuestName = ptr.Ptr(guest)
	return b
}

func customerBooking(id, activityID, employeeID int64, start, end string, participants int, customerID int64) *domain.Booking {
	b := booking(id, activityID, employeeID, start, end, participants)
	b.CustomerID = ptr.Ptr(customerID)
	return b
}

func newStore(bookings ...*domain.Booking) *store {
	return &store{
		bookings: bookings,
		activities: map[int64]*domain.Activity{
			1: adventure(1, "Zip Line", 1),
			2: adventure(2, "Canyoning", 1),
			3: adventure(3, "Rafting", 2),
		},
		users: map[int64]*domain.User{
			1: {ID: 1, FirstName: "Ana", LastName: "Pop", Enabled: true, Roles: []domain.Role{domain.RoleEmployee}},
			2: {ID: 2, FirstName: "Bogdan", LastName: "Ionescu", Enabled: true, Roles: []domain.Role{domain.RoleEmployee}},
			6: {ID: 6, FirstName: "Maria", LastName: "Dinu", Enabled: true, Roles: []domain.Role{domain.RoleUser}},
		},
	}
}

func newEngine(s *store) *scheduling.Engine {
	return scheduling.NewEngine(s, activityStore{s}, userStore{s}, nopRecorder{}, nopLogger{})
}

func newUseCase(bookings ...*domain.Booking) *UseCase {
	s := newStore(bookings...)
	return NewUseCase(s, activityStore{s}, userStore{s}, newEngine(s), readOnlyTx{}, nopLogger{})
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	req := &Request{BookingID: 10, EmployeeID: 2}
	original := func() *domain.Booking { return customerBooking(10, 1, 1, "09:00", "11:00", 4, 6) }

	t.Run("both directions must fit", func(t *testing.T) {
		uc := newUseCase(
			original(),
			guestBooking(20, 2, 2, "10:00", "12:00", 3, "Ioana"),
			customerBooking(22, 2, 2, "09:00", "11:00", 8, 6),
		)

		options, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		require.Len(t, options.CompatibleBookings, 1)

		// 20 отпадает: Богдан с оставшимся 22 (8 чел.) не примет 10 (4 чел.)
		compatible := options.CompatibleBookings[0]
		assert.Equal(t, int64(22), compatible.BookingID)
		assert.Equal(t, "Maria Dinu", compatible.CustomerName)
		assert.False(t, compatible.IsGuest)
		assert.Equal(t, "Canyoning", compatible.ActivityName)
		assert.Equal(t, "Ana Pop", options.CurrentEmployeeName)
		assert.Equal(t, "Bogdan Ionescu", options.NewEmployeeName)
		assert.Empty(t, options.Reason)
	})

	t.Run("guest customer name", func(t *testing.T) {
		uc := newUseCase(original(), guestBooking(20, 2, 2, "10:00", "12:00", 3, "Ioana"))

		options, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		require.True(t, options.HasCompatibleBookings())
		assert.Equal(t, "Ioana", options.CompatibleBookings[0].CustomerName)
		assert.True(t, options.CompatibleBookings[0].IsGuest)
	})

	t.Run("incompatible category", func(t *testing.T) {
		uc := newUseCase(original(), booking(21, 3, 2, "09:00", "11:00", 2))

		options, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.False(t, options.HasCompatibleBookings())
		assert.Equal(t, domain.SwapReasonNoCompatibleOptions, options.Reason)
	})

	t.Run("no conflicts", func(t *testing.T) {
		uc := newUseCase(original(), booking(23, 2, 2, "13:00", "15:00", 2))

		options, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, options.CompatibleBookings)
		assert.Equal(t, domain.SwapReasonNoConflictingBooks, options.Reason)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := newUseCase(original()).Execute(ctx, &Request{BookingID: 10, EmployeeID: 99})
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})
}

// Обмен с найденным вариантом оставляет обоих сотрудников в пределах вместимости
func TestUseCase_SwapWithOptionKeepsBothAssignmentsValid(t *testing.T) {
	ctx := context.Background()
	s := newStore(
		customerBooking(10, 1, 1, "09:00", "11:00", 4, 6),
		booking(11, 1, 1, "10:00", "12:00", 2),
		guestBooking(20, 2, 2, "10:00", "12:00", 3, "Ioana"),
		customerBooking(22, 2, 2, "09:00", "11:00", 8, 6),
	)
	engine := newEngine(s)

	options, err := NewUseCase(s, activityStore{s}, userStore{s}, engine, readOnlyTx{}, nopLogger{}).
		Execute(ctx, &Request{BookingID: 10, EmployeeID: 2})
	require.NoError(t, err)
	require.Len(t, options.CompatibleBookings, 1)
	target := options.CompatibleBookings[0].BookingID
	assert.Equal(t, int64(22), target)

	swap := swapEmployees.NewUseCase(s, activityStore{s}, serialTx{}, nopPublisher{}, nopLogger{})
	_, err = swap.Execute(ctx, &swapEmployees.Request{BookingID1: 10, BookingID2: target})
	require.NoError(t, err)

	for _, id := range []int64{10, target} {
		b, err := s.GetByID(ctx, id)
		require.NoError(t, err)
		activity := s.activities[b.ActivityID]

		ok, err := engine.CanEmployeeHandle(ctx, *b.EmployeeID, scheduling.CandidateFromBooking(b, activity))
		require.NoError(t, err)
		assert.True(t, ok, "booking %d with employee %d", id, *b.EmployeeID)
	}

	first, _ := s.GetByID(ctx, 10)
	second, _ := s.GetByID(ctx, target)
	assert.Equal(t, int64(2), *first.EmployeeID)
	assert.Equal(t, int64(1), *second.EmployeeID)
}
