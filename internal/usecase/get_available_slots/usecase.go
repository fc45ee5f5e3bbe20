package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/activity"
)

// UseCase use case для получения сетки слотов активности на день
type UseCase struct {
	activityRepo ActivityRepository
	windowRepo   WorkWindowRepository
	engine       SchedulingEngine
	txManager    TransactionManager
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	activityRepo ActivityRepository,
	windowRepo WorkWindowRepository,
	engine SchedulingEngine,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		activityRepo: activityRepo,
		windowRepo:   windowRepo,
		engine:       engine,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
// Все чтения идут из одного снимка, чтобы повторный вызов без записей давал тот же результат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: activity=%d, date=%s", req.ActivityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем активность вместе с категорией
	activity, err := uc.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("GetAvailableSlots: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %w", ErrInternal, err)
	}

	if !activity.Active {
		uc.logger.Warn("GetAvailableSlots: activity id=%d is inactive", req.ActivityID)
		return nil, ErrActivityNotFound
	}

	// 3. Число участников и дата
	participants, err := resolveParticipants(activity, req.Participants)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Окна, сотрудники и их загрузка из одного снимка
	slots := make([]domain.TimeSlot, 0)
	err = uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		windows, err := uc.windowRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get work windows: %w", ErrInternal, err)
		}

		if len(windows) == 0 {
			return nil
		}

		employees, err := uc.engine.EligibleEmployees(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to get employees: %w", ErrInternal, err)
		}

		days, err := uc.engine.LoadDays(txCtx, employees, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to load employee days: %w", ErrInternal, err)
		}

		slots = generateSlots(windows, days, activity, req.Date, participants)
		return nil
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, err
	}

	resp := &Response{
		ActivityID:   activity.ID,
		Date:         req.Date,
		Participants: participants,
		Slots:        slots,
	}

	available := resp.AvailableCount()
	uc.metrics.ObserveSlots(available, len(slots)-available)

	uc.logger.Info("GetAvailableSlots: activity=%d, date=%s: %d slots, %d available",
		activity.ID, req.Date.Format(domain.DateFormat), len(slots), available)

	return resp, nil
}
