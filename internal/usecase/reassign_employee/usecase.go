package reassign_employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// UseCase use case для ручного переназначения бронирования другому сотруднику
type UseCase struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	userRepo     UserRepository
	engine       SchedulingEngine
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	userRepo UserRepository,
	engine SchedulingEngine,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		engine:       engine,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переназначает бронирование
// Нагрузка нового сотрудника проверяется без самого бронирования, проверка и запись идут в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReassignEmployee: booking=%d -> employee=%d", req.BookingID, req.EmployeeID)

	if req.BookingID <= 0 || req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: booking and employee ids must be positive", ErrInvalidInput)
	}

	var (
		result   *domain.Booking
		employee *domain.User
		changed  bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if booking.IsTerminal() {
			return fmt.Errorf("%w: booking %d is %s", ErrInvalidInput, booking.ID, booking.Status)
		}

		user, err := uc.userRepo.GetByID(txCtx, req.EmployeeID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, req.EmployeeID)
			}
			return fmt.Errorf("%w: failed to get employee: %w", ErrInternal, err)
		}
		if !user.HasRole(domain.RoleEmployee) {
			return fmt.Errorf("%w: user %d is not an employee", ErrEmployeeNotFound, req.EmployeeID)
		}

		employee = user
		result = booking

		if booking.IsAssignedTo(user.ID) {
			return nil
		}

		activity, err := uc.activityRepo.GetByID(txCtx, booking.ActivityID)
		if err != nil {
			return fmt.Errorf("%w: failed to get activity id=%d: %w", ErrInternal, booking.ActivityID, err)
		}

		verdict, err := uc.engine.Assess(txCtx, user.ID, scheduling.CandidateFromBooking(booking, activity))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if !verdict.OK() {
			return fmt.Errorf("%w: %s", ErrIncompatibleSwap, verdict)
		}

		if err := uc.bookingRepo.UpdateEmployee(txCtx, booking.ID, user.ID); err != nil {
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		booking.EmployeeID = &user.ID
		changed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ReassignEmployee: %v", err)
		} else {
			uc.logger.Warn("ReassignEmployee: %v", err)
		}
		return nil, err
	}

	if changed {
		event := domain.NewBookingEvent(domain.EventBookingReassigned, result, uc.timeProvider.Now())
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Error("ReassignEmployee: failed to publish event for booking id=%d: %v", result.ID, err)
		}
		uc.logger.Info("ReassignEmployee: booking=%d assigned to employee=%d", result.ID, employee.ID)
	}

	return &Response{Booking: result, EmployeeName: employee.FullName()}, nil
}
