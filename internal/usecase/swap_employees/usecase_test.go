package swap_employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

type memoryBookings struct {
	items     map[int64]*domain.Booking
	locked    []int64
	updateErr error
	// transient ошибки возвращаются по одной на вызов UpdateEmployee
	transient []error
}

func (m *memoryBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	m.locked = append(m.locked, id)
	copied := *b
	return &copied, nil
}

func (m *memoryBookings) UpdateEmployee(_ context.Context, id int64, employeeID int64) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if len(m.transient) > 0 {
		err := m.transient[0]
		m.transient = m.transient[1:]
		return err
	}
	m.items[id].EmployeeID = &employeeID
	return nil
}

type stubActivities map[int64]*domain.Activity

func (s stubActivities) GetByID(_ context.Context, id int64) (*domain.Activity, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, activityRepo.ErrActivityNotFound
}

type serialTx struct{}

func (serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []domain.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activity(id, categoryID int64, location string) *domain.Activity {
	return &domain.Activity{ID: id, Name: location, CategoryID: ptr.Ptr(categoryID), Location: location}
}

func newFixture(bookings ...*domain.Booking) (*UseCase, *memoryBookings, *recordingPublisher) {
	repo := &memoryBookings{items: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.items[b.ID] = b
	}
	activities := stubActivities{
		1: activity(1, 1, "Bucegi Park"),
		2: activity(2, 1, "Bucegi Park"),
		3: activity(3, 2, "Bucegi Park"),
		4: activity(4, 1, "Lake Vidraru"),
	}
	publisher := &recordingPublisher{}
	uc := NewUseCase(repo, activities, serialTx{}, publisher, nopLogger{})
	uc.timeProvider = fixedTime(time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC))
	return uc, repo, publisher
}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

func assigned(id, activityID, employeeID int64) *domain.Booking {
	return &domain.Booking{ID: id, ActivityID: activityID, EmployeeID: ptr.Ptr(employeeID), Status: domain.StatusConfirmed}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("employees are exchanged", func(t *testing.T) {
		uc, repo, publisher := newFixture(assigned(10, 1, 1), assigned(20, 2, 2))

		resp, err := uc.Execute(ctx, &Request{BookingID1: 20, BookingID2: 10})
		require.NoError(t, err)

		assert.Equal(t, int64(20), resp.First.ID)
		assert.Equal(t, int64(1), *resp.First.EmployeeID)
		assert.Equal(t, int64(2), *resp.Second.EmployeeID)
		assert.Equal(t, int64(2), *repo.items[10].EmployeeID)
		assert.Equal(t, int64(1), *repo.items[20].EmployeeID)
		assert.Equal(t, []int64{10, 20}, repo.locked)

		require.Len(t, publisher.events, 2)
		assert.Equal(t, domain.EventBookingSwapped, publisher.events[0].Type)
		assert.Equal(t, int64(20), *publisher.events[0].RelatedID)
	})

	t.Run("different category is refused", func(t *testing.T) {
		uc, repo, publisher := newFixture(assigned(10, 1, 1), assigned(30, 3, 2))

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 30})
		assert.ErrorIs(t, err, ErrIncompatibleSwap)
		assert.Equal(t, int64(1), *repo.items[10].EmployeeID)
		assert.Empty(t, publisher.events)
	})

	t.Run("different location is refused", func(t *testing.T) {
		uc, _, _ := newFixture(assigned(10, 1, 1), assigned(40, 4, 2))

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 40})
		assert.ErrorIs(t, err, ErrIncompatibleSwap)
	})

	t.Run("unassigned booking", func(t *testing.T) {
		unassigned := assigned(20, 2, 2)
		unassigned.EmployeeID = nil
		uc, _, _ := newFixture(assigned(10, 1, 1), unassigned)

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 20})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("same booking twice", func(t *testing.T) {
		uc, _, _ := newFixture(assigned(10, 1, 1))

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 10})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing booking", func(t *testing.T) {
		uc, _, _ := newFixture(assigned(10, 1, 1))

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 99})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		uc, repo, _ := newFixture(assigned(10, 1, 1), assigned(20, 2, 2))
		repo.updateErr = errors.New("serialization failure")

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 20})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

type fakeTx struct {
	dbmetrics.DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type countingBeginner struct{ begins int }

func (b *countingBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	return fakeTx{}, nil
}

func serializationFailure() error {
	return fmt.Errorf("booking.repository: UpdateEmployee - execute update: %w", &pq.Error{Code: "40001"})
}

func TestUseCase_Execute_SerializationRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("conflict is retried and the swap commits", func(t *testing.T) {
		uc, repo, publisher := newFixture(assigned(10, 1, 1), assigned(20, 2, 2))
		repo.transient = []error{serializationFailure()}
		beginner := &countingBeginner{}
		uc.txManager = txmanager.NewTransactionManager(beginner)

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 20})
		require.NoError(t, err)

		assert.Equal(t, 2, beginner.begins)
		assert.Equal(t, int64(2), *repo.items[10].EmployeeID)
		assert.Equal(t, int64(1), *repo.items[20].EmployeeID)
		assert.Len(t, publisher.events, 2)
	})

	t.Run("persistent conflict is reported as a concurrency conflict", func(t *testing.T) {
		uc, repo, publisher := newFixture(assigned(10, 1, 1), assigned(20, 2, 2))
		repo.updateErr = serializationFailure()
		beginner := &countingBeginner{}
		uc.txManager = txmanager.NewTransactionManager(beginner, txmanager.WithMaxAttempts(3))

		_, err := uc.Execute(ctx, &Request{BookingID1: 10, BookingID2: 20})
		assert.ErrorIs(t, err, txmanager.ErrConcurrencyConflict)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Equal(t, 3, beginner.begins)
		assert.Empty(t, publisher.events)
	})
}
