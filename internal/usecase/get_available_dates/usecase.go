package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/activity"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// UseCase use case для получения дней месяца, в которые есть хотя бы один свободный слот
type UseCase struct {
	activityRepo ActivityRepository
	windowRepo   WorkWindowRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	activityRepo ActivityRepository,
	windowRepo WorkWindowRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		activityRepo: activityRepo,
		windowRepo:   windowRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения дней месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: activity=%d, month=%s", req.ActivityID, req.ReferenceDate.Format("2006-01"))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	activity, err := uc.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("GetAvailableDates: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %w", ErrInternal, err)
	}

	if !activity.Active {
		uc.logger.Warn("GetAvailableDates: activity id=%d is inactive", req.ActivityID)
		return nil, ErrActivityNotFound
	}

	if err := validateParticipants(activity, req.Participants); err != nil {
		uc.logger.Warn("GetAvailableDates: %v", err)
		return nil, err
	}

	first, last := domain.MonthBounds(req.ReferenceDate)
	resp := &Response{
		ActivityID:  activity.ID,
		Month:       first,
		Dates:       make([]time.Time, 0),
		Approximate: true,
	}

	// Дни до сегодняшнего и дальше окна бронирования не рассматриваются
	from := first
	today := domain.DateIn(now, first.Location())
	if from.Before(today) {
		from = today
	}
	horizon := today.AddDate(0, 0, domain.MaxAdvanceBookingDays)
	if last.After(horizon) {
		last = horizon
	}
	if last.Before(from) {
		return resp, nil
	}

	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		windows, err := uc.windowRepo.GetInDateRange(txCtx, from, last)
		if err != nil {
			return fmt.Errorf("%w: failed to get work windows: %w", ErrInternal, err)
		}

		if len(windows) == 0 {
			return nil
		}

		bookings, err := uc.bookingRepo.GetByDateRangeExcludingStatus(txCtx, from, last, domain.StatusCancelled)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		windowsByDate := groupByDate(windows)
		bookingsByDay := groupBookings(bookings)

		for date := from; !date.After(last); date = date.AddDate(0, 0, 1) {
			dayWindows, ok := windowsByDate[date.Format(domain.DateFormat)]
			if !ok {
				continue
			}

			if hasFreeSlot(date, dayWindows, bookingsByDay, activity) {
				resp.Dates = append(resp.Dates, date)
			}
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableDates: activity=%d, month=%s: %d dates",
		activity.ID, first.Format("2006-01"), len(resp.Dates))

	return resp, nil
}

// hasFreeSlot ищет первый слот, который не пересекается с бронированиями сотрудника окна.
// Совместное ведение групп здесь не учитывается.
func hasFreeSlot(date time.Time, windows []*domain.WorkWindow, bookings map[dayKey][]*domain.Booking, activity *domain.Activity) bool {
	for _, group := range groupByEmployee(windows) {
		key := dayKey{employeeID: group.employeeID, date: date.Format(domain.DateFormat)}
		day := scheduling.NewEmployeeDay(group.employeeID, date, bookings[key], nil)
		for _, window := range group.windows {
			for _, start := range window.CandidateStarts(activity.DurationMinutes, domain.SlotStepMinutes) {
				end, err := start.AddMinutes(activity.DurationMinutes)
				if err != nil {
					continue
				}
				if day.IsFree(start, end) {
					return true
				}
			}
		}
	}

	return false
}

type dayKey struct {
	employeeID int64
	date       string
}

// groupBookings раскладывает бронирования по сотруднику и дню, неназначенные пропускаются
func groupBookings(bookings []*domain.Booking) map[dayKey][]*domain.Booking {
	result := make(map[dayKey][]*domain.Booking)
	for _, b := range bookings {
		if b.EmployeeID == nil {
			continue
		}
		key := dayKey{employeeID: *b.EmployeeID, date: b.BookingDate.Format(domain.DateFormat)}
		result[key] = append(result[key], b)
	}
	return result
}

type employeeWindows struct {
	employeeID int64
	windows    []*domain.WorkWindow
}

func groupByDate(windows []*domain.WorkWindow) map[string][]*domain.WorkWindow {
	result := make(map[string][]*domain.WorkWindow)
	for _, w := range windows {
		key := w.WorkDate.Format(domain.DateFormat)
		result[key] = append(result[key], w)
	}
	return result
}

// groupByEmployee сохраняет порядок первого появления сотрудника
func groupByEmployee(windows []*domain.WorkWindow) []employeeWindows {
	index := make(map[int64]int)
	result := make([]employeeWindows, 0)
	for _, w := range windows {
		i, ok := index[w.EmployeeID]
		if !ok {
			i = len(result)
			index[w.EmployeeID] = i
			result = append(result, employeeWindows{employeeID: w.EmployeeID})
		}
		result[i].windows = append(result[i].windows, w)
	}
	return result
}
