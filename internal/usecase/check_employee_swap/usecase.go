package check_employee_swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// UseCase use case для проверки, нужен ли обмен при передаче бронирования другому сотруднику
type UseCase struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	userRepo     UserRepository
	engine       SchedulingEngine
	txManager    TransactionManager
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	userRepo UserRepository,
	engine SchedulingEngine,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		engine:       engine,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет проверку обмена
// Из нескольких конфликтующих бронирований кандидата оценивается самое раннее,
// общее число конфликтов возвращается в ConflictCount
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.SwapAssessment, error) {
	uc.logger.Info("CheckEmployeeSwap: booking=%d, employee=%d", req.BookingID, req.EmployeeID)

	if req.BookingID <= 0 || req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: booking and employee ids must be positive", ErrInvalidInput)
	}

	var result *domain.SwapAssessment
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		assessment, err := uc.assess(txCtx, req)
		if err != nil {
			return err
		}
		result = assessment
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CheckEmployeeSwap: %v", err)
		} else {
			uc.logger.Warn("CheckEmployeeSwap: %v", err)
		}
		return nil, err
	}

	uc.metrics.ObserveSwapCheck(checkResult(result))
	uc.logger.Info("CheckEmployeeSwap: booking=%d, employee=%d, swapNeeded=%t, canSwap=%t",
		req.BookingID, req.EmployeeID, result.SwapNeeded, result.CanSwap)
	return result, nil
}

func (uc *UseCase) assess(ctx context.Context, req *Request) (*domain.SwapAssessment, error) {
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

	candidate, err := uc.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	activity, err := uc.activityRepo.GetByID(ctx, booking.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get activity id=%d: %w", ErrInternal, booking.ActivityID, err)
	}

	candidateDay, err := uc.engine.LoadDay(ctx, candidate.ID, booking.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	assessment := &domain.SwapAssessment{
		BookingID:       booking.ID,
		NewEmployeeName: candidate.FullName(),
		Location:        activity.Location,
		Category:        activity.CategoryName(),
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
	}

	conflicts := candidateDay.Overlapping(booking.StartTime, booking.EndTime, &booking.ID)
	assessment.ConflictCount = len(conflicts)
	if len(conflicts) == 0 {
		assessment.Reason = domain.SwapReasonNoConflict
		return assessment, nil
	}

	assessment.SwapNeeded = true
	conflict := conflicts[0]
	assessment.ConflictingBookingID = &conflict.ID

	conflictActivity, ok := candidateDay.Activity(conflict.ActivityID)
	if !ok {
		return nil, fmt.Errorf("%w: activity id=%d of booking %d is missing", ErrInternal, conflict.ActivityID, conflict.ID)
	}
	assessment.ConflictingBookingActivity = conflictActivity.Name

	if booking.EmployeeID == nil {
		assessment.Reason = domain.SwapReasonNoCurrentEmployee
		return assessment, nil
	}

	current, err := uc.userRepo.GetByID(ctx, *booking.EmployeeID)
	if err != nil && !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: failed to get current employee: %w", ErrInternal, err)
	}
	if current != nil {
		assessment.CurrentEmployeeName = current.FullName()
	}

	if !activity.SameCategoryAs(conflictActivity) {
		assessment.Reason = domain.SwapReasonCategoryMismatch
		return assessment, nil
	}
	if !activity.SameLocationAs(conflictActivity) {
		assessment.Reason = domain.SwapReasonLocationMismatch
		return assessment, nil
	}

	currentDay, err := uc.engine.LoadDay(ctx, *booking.EmployeeID, booking.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	if !currentDay.Assess(scheduling.CandidateFromBooking(conflict, conflictActivity)).OK() {
		assessment.Reason = domain.SwapReasonCapacity
		return assessment, nil
	}

	assessment.CanSwap = true
	assessment.Reason = domain.SwapReasonPossible
	return assessment, nil
}

// Результаты проверки обмена для метрик
const (
	ResultDirect     = "direct"
	ResultSwappable  = "swappable"
	ResultImpossible = "impossible"
)

func checkResult(a *domain.SwapAssessment) string {
	switch {
	case !a.SwapNeeded:
		return ResultDirect
	case a.CanSwap:
		return ResultSwappable
	default:
		return ResultImpossible
	}
}

func (uc *UseCase) getEmployee(ctx context.Context, id int64) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrEmployeeNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get employee: %w", ErrInternal, err)
	}
	if !user.HasRole(domain.RoleEmployee) {
		return nil, fmt.Errorf("%w: user %d is not an employee", ErrEmployeeNotFound, id)
	}
	return user, nil
}
