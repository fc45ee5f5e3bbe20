package swap_employees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
)

// UseCase use case для обмена назначенными сотрудниками между двумя бронированиями
type UseCase struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute меняет сотрудников местами
// Совместимость нагрузки здесь не пересчитывается: ее проверяют check/options до вызова.
// Проверяется только, что активности совпадают по категории и месту.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SwapEmployees: booking1=%d, booking2=%d", req.BookingID1, req.BookingID2)

	if req.BookingID1 <= 0 || req.BookingID2 <= 0 || req.BookingID1 == req.BookingID2 {
		uc.logger.Warn("SwapEmployees: invalid booking ids %d, %d", req.BookingID1, req.BookingID2)
		return nil, fmt.Errorf("%w: two different positive booking ids are required", ErrInvalidInput)
	}

	// Строки блокируются в порядке возрастания ID
	firstID, secondID := req.BookingID1, req.BookingID2
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	var first, second *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		if first, err = uc.lockBooking(txCtx, firstID); err != nil {
			return err
		}
		if second, err = uc.lockBooking(txCtx, secondID); err != nil {
			return err
		}

		if first.EmployeeID == nil || second.EmployeeID == nil {
			return fmt.Errorf("%w: both bookings must have an assigned employee", ErrInvalidInput)
		}

		if err := uc.checkCompatible(txCtx, first, second); err != nil {
			return err
		}

		firstEmployee, secondEmployee := *first.EmployeeID, *second.EmployeeID

		if err := uc.bookingRepo.UpdateEmployee(txCtx, first.ID, secondEmployee); err != nil {
			return fmt.Errorf("%w: failed to update booking id=%d: %w", ErrInternal, first.ID, err)
		}
		if err := uc.bookingRepo.UpdateEmployee(txCtx, second.ID, firstEmployee); err != nil {
			return fmt.Errorf("%w: failed to update booking id=%d: %w", ErrInternal, second.ID, err)
		}

		first.EmployeeID = &secondEmployee
		second.EmployeeID = &firstEmployee
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("SwapEmployees: %v", err)
		} else {
			uc.logger.Warn("SwapEmployees: %v", err)
		}
		return nil, err
	}

	now := uc.timeProvider.Now()
	uc.publishSwapped(ctx, first, second.ID, now)
	uc.publishSwapped(ctx, second, first.ID, now)

	uc.logger.Info("SwapEmployees: swapped employees between bookings %d and %d", first.ID, second.ID)

	if first.ID != req.BookingID1 {
		first, second = second, first
	}
	return &Response{First: first, Second: second}, nil
}

func (uc *UseCase) lockBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get booking id=%d: %w", ErrInternal, id, err)
	}
	return booking, nil
}

func (uc *UseCase) checkCompatible(ctx context.Context, first, second *domain.Booking) error {
	firstActivity, err := uc.activityRepo.GetByID(ctx, first.ActivityID)
	if err != nil {
		return fmt.Errorf("%w: failed to get activity id=%d: %w", ErrInternal, first.ActivityID, err)
	}
	secondActivity, err := uc.activityRepo.GetByID(ctx, second.ActivityID)
	if err != nil {
		return fmt.Errorf("%w: failed to get activity id=%d: %w", ErrInternal, second.ActivityID, err)
	}

	if !firstActivity.SameCategoryAs(secondActivity) {
		return fmt.Errorf("%w: %s", ErrIncompatibleSwap, domain.SwapReasonCategoryMismatch)
	}
	if !firstActivity.SameLocationAs(secondActivity) {
		return fmt.Errorf("%w: %s", ErrIncompatibleSwap, domain.SwapReasonLocationMismatch)
	}
	return nil
}

func (uc *UseCase) publishSwapped(ctx context.Context, b *domain.Booking, relatedID int64, at time.Time) {
	event := domain.NewBookingEvent(domain.EventBookingSwapped, b, at)
	event.RelatedID = &relatedID
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("SwapEmployees: failed to publish event for booking id=%d: %v", b.ID, err)
	}
}
