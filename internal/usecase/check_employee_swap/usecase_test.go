package check_employee_swap

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

type nopRecorder struct{}

func (nopRecorder) ObserveAssignment(string) {}

type countingMetrics map[string]int

func (c countingMetrics) ObserveSwapCheck(result string) { c[result]++ }

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

func newUseCase(bookings ...*domain.Booking) *UseCase {
	uc, _ := newUseCaseWithMetrics(bookings...)
	return uc
}

func newUseCaseWithMetrics(bookings ...*domain.Booking) (*UseCase, countingMetrics) {
	s := &store{
		bookings: bookings,
		activities: map[int64]*domain.Activity{
			1: adventure(1, "Zip Line", 1),
			2: adventure(2, "Canyoning", 1),
			3: adventure(3, "Rafting", 2),
		},
		users: map[int64]*domain.User{
			1: {ID: 1, FirstName: "Ana", LastName: "Pop", Enabled: true, Roles: []domain.Role{domain.RoleEmployee}},
			2: {ID: 2, FirstName: "Bogdan", LastName: "Ionescu", Enabled: true, Roles: []domain.Role{domain.RoleEmployee}},
			3: {ID: 3, FirstName: "Carla", Enabled: true, Roles: []domain.Role{domain.RoleUser}},
		},
	}
	engine := scheduling.NewEngine(s, activityStore{s}, userStore{s}, nopRecorder{}, nopLogger{})
	metrics := countingMetrics{}
	return NewUseCase(s, activityStore{s}, userStore{s}, engine, readOnlyTx{}, metrics, nopLogger{}), metrics
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	req := &Request{BookingID: 10, EmployeeID: 2}

	t.Run("swap possible", func(t *testing.T) {
		uc, metrics := newUseCaseWithMetrics(booking(10, 1, 1, "09:00", "11:00", 4), booking(20, 2, 2, "10:00", "12:00", 5))

		result, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.SwapNeeded)
		assert.True(t, result.CanSwap)
		assert.Equal(t, int64(20), *result.ConflictingBookingID)
		assert.Equal(t, "Canyoning", result.ConflictingBookingActivity)
		assert.Equal(t, "Ana Pop", result.CurrentEmployeeName)
		assert.Equal(t, "Bogdan Ionescu", result.NewEmployeeName)
		assert.Equal(t, "Adventure", result.Category)
		assert.Equal(t, domain.SwapReasonPossible, result.Reason)
		assert.Equal(t, 1, metrics[ResultSwappable])
	})

	t.Run("current employee would exceed capacity", func(t *testing.T) {
		uc := newUseCase(booking(10, 1, 1, "09:00", "11:00", 4), booking(20, 2, 2, "10:00", "12:00", 7))

		result, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.True(t, result.SwapNeeded)
		assert.False(t, result.CanSwap)
		assert.Equal(t, domain.SwapReasonCapacity, result.Reason)
	})

	t.Run("no conflict means direct assignment", func(t *testing.T) {
		uc := newUseCase(booking(10, 1, 1, "09:00", "11:00", 4), booking(20, 2, 2, "11:00", "13:00", 5))

		result, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.SwapNeeded)
		assert.False(t, result.CanSwap)
		assert.Nil(t, result.ConflictingBookingID)
		assert.Equal(t, domain.SwapReasonNoConflict, result.Reason)
	})

	t.Run("different category", func(t *testing.T) {
		uc := newUseCase(booking(10, 1, 1, "09:00", "11:00", 4), booking(20, 3, 2, "10:00", "12:00", 2))

		result, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.CanSwap)
		assert.Equal(t, domain.SwapReasonCategoryMismatch, result.Reason)
	})

	t.Run("earliest of several conflicts is evaluated", func(t *testing.T) {
		uc := newUseCase(
			booking(10, 1, 1, "09:00", "11:00", 4),
			booking(21, 3, 2, "08:00", "10:00", 2),
			booking(22, 2, 2, "10:00", "12:00", 2),
		)

		result, err := uc.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 2, result.ConflictCount)
		assert.Equal(t, int64(21), *result.ConflictingBookingID)
	})

	t.Run("candidate must be an employee", func(t *testing.T) {
		uc := newUseCase(booking(10, 1, 1, "09:00", "11:00", 4))

		_, err := uc.Execute(ctx, &Request{BookingID: 10, EmployeeID: 3})
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("already assigned", func(t *testing.T) {
		uc := newUseCase(booking(10, 1, 1, "09:00", "11:00", 4))

		_, err := uc.Execute(ctx, &Request{BookingID: 10, EmployeeID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := newUseCase().Execute(ctx, req)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
