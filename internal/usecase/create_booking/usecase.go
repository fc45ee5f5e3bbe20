package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/activity"
	"github.com/m04kA/SMC-ActivityBookingService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
)

// UseCase use case для создания бронирования с автоматическим назначением сотрудника
type UseCase struct {
	bookingRepo   BookingRepository
	activityRepo  ActivityRepository
	finder        EmployeeFinder
	txManager     TransactionManager
	publisher     EventPublisher
	notifications NotificationClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	finder EmployeeFinder,
	txManager TransactionManager,
	publisher EventPublisher,
	notifications NotificationClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		activityRepo:  activityRepo,
		finder:        finder,
		txManager:     txManager,
		publisher:     publisher,
		notifications: notifications,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Поиск сотрудника и вставка идут в одной сериализуемой транзакции:
// два параллельных запроса не могут оба занять последнее место у сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: activity=%d, date=%s, time=%s, participants=%d, guest=%t",
		req.ActivityID, req.Date.Format(domain.DateFormat), req.StartTime, req.Participants, req.Guest != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем активность
	activity, err := uc.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("CreateBooking: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %w", ErrInternal, err)
	}

	if !activity.Active {
		uc.logger.Warn("CreateBooking: activity id=%d is inactive", req.ActivityID)
		return nil, ErrActivityNotFound
	}

	// 3. Участники и время
	if !activity.AcceptsParticipants(req.Participants) {
		uc.logger.Warn("CreateBooking: participants=%d not in [%d, %d]",
			req.Participants, activity.MinParticipants, activity.MaxParticipants)
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidCapacity, req.Participants, activity.MinParticipants, activity.MaxParticipants)
	}

	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	candidate, err := scheduling.NewCandidate(activity, req.Date, req.StartTime, req.Participants)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Цена
	total, deposit := activity.Pricing(req.Participants)

	var (
		result   *domain.Booking
		employee *domain.User
	)

	// 5. Назначение сотрудника и сохранение
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		found, err := uc.finder.FindAvailableEmployee(txCtx, candidate)
		if err != nil {
			if errors.Is(err, scheduling.ErrNoEmployeeAvailable) {
				return ErrNoEmployeeAvailable
			}
			return fmt.Errorf("%w: failed to find employee: %w", ErrInternal, err)
		}

		booking := &domain.Booking{
			ActivityID:      activity.ID,
			CustomerID:      req.CustomerID,
			EmployeeID:      &found.ID,
			BookingDate:     req.Date,
			StartTime:       candidate.StartTime,
			EndTime:         candidate.EndTime,
			Participants:    req.Participants,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
			PaymentStatus:   domain.PaymentUnpaid,
			TotalPrice:      total,
			DepositAmount:   deposit,
			PaidAmount:      0,
			RemainingAmount: total,
		}
		if req.Guest != nil {
			name := strings.TrimSpace(req.Guest.Name)
			phone := strings.TrimSpace(req.Guest.Phone)
			booking.GuestName = &name
			booking.GuestPhone = &phone
			booking.GuestEmail = req.Guest.Email
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		employee = found
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNoEmployeeAvailable) {
			uc.logger.Warn("CreateBooking: no employee can take activity=%d on %s %s-%s",
				activity.ID, req.Date.Format(domain.DateFormat), candidate.StartTime, candidate.EndTime)
		} else {
			uc.logger.Error("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, employee=%d", result.ID, employee.ID)

	// 6. После коммита: событие и ссылка на оплату гостю
	if err := uc.publisher.Publish(ctx, domain.NewBookingEvent(domain.EventBookingCreated, result, now)); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	if result.IsGuest() && result.GuestPhone != nil {
		payload := notificationservice.PaymentLinkRequest{
			BookingID:    result.ID,
			Phone:        *result.GuestPhone,
			GuestName:    result.CustomerDisplayName(),
			ActivityName: activity.Name,
			Date:         result.BookingDate.Format(domain.DateFormat),
			StartTime:    result.StartTime.String(),
			Amount:       result.DepositAmount,
		}
		if err := uc.notifications.SendPaymentLinkWithGracefulDegradation(ctx, payload); err != nil {
			uc.logger.Warn("CreateBooking: payment link for booking id=%d not sent: %v", result.ID, err)
		}
	}

	return &Response{
		Booking:      result,
		ActivityName: activity.Name,
		EmployeeName: employee.FullName(),
	}, nil
}
