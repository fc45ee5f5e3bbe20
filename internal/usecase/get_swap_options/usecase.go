package get_swap_options

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// UseCase use case для перечисления бронирований кандидата, на которые можно обменять бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	userRepo     UserRepository
	engine       SchedulingEngine
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	userRepo UserRepository,
	engine SchedulingEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		engine:       engine,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute возвращает совместимые варианты обмена
// Бронирование кандидата подходит, только если обмен проходит в обе стороны:
// текущий сотрудник берет его вместо своего, а кандидат берет исходное вместо него
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.SwapOptions, error) {
	uc.logger.Info("GetSwapOptions: booking=%d, employee=%d", req.BookingID, req.EmployeeID)

	if req.BookingID <= 0 || req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: booking and employee ids must be positive", ErrInvalidInput)
	}

	var result *domain.SwapOptions
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		options, err := uc.collect(txCtx, req)
		if err != nil {
			return err
		}
		result = options
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("GetSwapOptions: %v", err)
		} else {
			uc.logger.Warn("GetSwapOptions: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("GetSwapOptions: booking=%d, employee=%d, compatible=%d",
		req.BookingID, req.EmployeeID, len(result.CompatibleBookings))
	return result, nil
}

func (uc *UseCase) collect(ctx context.Context, req *Request) (*domain.SwapOptions, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, req.BookingID)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if booking.IsAssignedTo(req.EmployeeID) {
		return nil, fmt.Errorf("%w: employee %d already serves booking %d", ErrInvalidInput, req.EmployeeID, booking.ID)
	}

	candidate, err := uc.userRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, req.EmployeeID)
		}
		return nil, fmt.Errorf("%w: failed to get employee: %w", ErrInternal, err)
	}
	if !candidate.HasRole(domain.RoleEmployee) {
		return nil, fmt.Errorf("%w: user %d is not an employee", ErrEmployeeNotFound, req.EmployeeID)
	}

	activity, err := uc.activityRepo.GetByID(ctx, booking.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get activity id=%d: %w", ErrInternal, booking.ActivityID, err)
	}

	options := &domain.SwapOptions{
		BookingID:          booking.ID,
		NewEmployeeName:    candidate.FullName(),
		Location:           activity.Location,
		Category:           activity.CategoryName(),
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		CompatibleBookings: make([]domain.CompatibleBooking, 0),
	}

	candidateDay, err := uc.engine.LoadDay(ctx, candidate.ID, booking.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	conflicts := candidateDay.Overlapping(booking.StartTime, booking.EndTime, &booking.ID)
	if len(conflicts) == 0 {
		options.Reason = domain.SwapReasonNoConflictingBooks
		return options, nil
	}

	if booking.EmployeeID == nil {
		options.Reason = domain.SwapReasonNoCurrentEmployee
		return options, nil
	}

	current, err := uc.userRepo.GetByID(ctx, *booking.EmployeeID)
	if err != nil && !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: failed to get current employee: %w", ErrInternal, err)
	}
	if current != nil {
		options.CurrentEmployeeName = current.FullName()
	}

	currentDay, err := uc.engine.LoadDay(ctx, *booking.EmployeeID, booking.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	original := scheduling.CandidateFromBooking(booking, activity)

	for _, other := range conflicts {
		otherActivity, ok := candidateDay.Activity(other.ActivityID)
		if !ok {
			uc.logger.Warn("GetSwapOptions: activity id=%d of booking %d is missing, skipping", other.ActivityID, other.ID)
			continue
		}

		if !activity.SameCategoryAs(otherActivity) || !activity.SameLocationAs(otherActivity) {
			continue
		}

		// Текущий сотрудник отдает исходное бронирование
		if !currentDay.Assess(scheduling.CandidateFromBooking(other, otherActivity).Excluding(booking.ID)).OK() {
			continue
		}

		// Кандидат отдает свое бронирование
		if !candidateDay.Assess(original.Excluding(other.ID)).OK() {
			continue
		}

		customerName, err := uc.customerName(ctx, other)
		if err != nil {
			return nil, err
		}

		options.CompatibleBookings = append(options.CompatibleBookings, domain.CompatibleBooking{
			BookingID:    other.ID,
			ActivityName: otherActivity.Name,
			CustomerName: customerName,
			IsGuest:      other.IsGuest(),
			Participants: other.Participants,
			StartTime:    other.StartTime,
			EndTime:      other.EndTime,
			Date:         other.BookingDate,
		})
	}

	if !options.HasCompatibleBookings() {
		options.Reason = domain.SwapReasonNoCompatibleOptions
	}

	return options, nil
}

func (uc *UseCase) customerName(ctx context.Context, b *domain.Booking) (string, error) {
	if b.CustomerID == nil {
		return b.CustomerDisplayName(), nil
	}

	customer, err := uc.userRepo.GetByID(ctx, *b.CustomerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: failed to get customer id=%d: %w", ErrInternal, *b.CustomerID, err)
	}
	return customer.FullName(), nil
}
