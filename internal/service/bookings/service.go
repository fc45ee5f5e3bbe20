package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видит его владелец, сотрудник или администратор
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !principal.Owns(booking) && !principal.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetMyBookings возвращает бронирования авторизованного клиента
func (s *Service) GetMyBookings(ctx context.Context, principal domain.Principal) (*models.BookingListResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%d", principal.UserID)

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, principal.UserID)
	if err != nil {
		s.logger.Error("GetMyBookings: repository error for user=%d: %v", principal.UserID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetMyBookings: found %d bookings for user=%d", len(bookings), principal.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetActivityBookings возвращает все бронирования активности на дату (для диспетчера)
func (s *Service) GetActivityBookings(ctx context.Context, activityID int64, date time.Time) (*models.BookingListResponse, error) {
	s.logger.Info("GetActivityBookings: activity=%d, date=%s", activityID, date.Format(domain.DateFormat))

	if activityID <= 0 {
		return nil, fmt.Errorf("%w: activity id must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByActivityAndDate(ctx, activityID, date)
	if err != nil {
		s.logger.Error("GetActivityBookings: repository error for activity=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: GetActivityBookings - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус
// PENDING -> CONFIRMED -> COMPLETED, отмена из любого незавершенного статуса
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	next, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status %q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	s.logger.Info("UpdateStatus: booking id=%d -> %s", id, next)

	now := s.timeProvider.Now()
	var updated *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if !booking.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		switch next {
		case domain.StatusConfirmed:
			deadline := now.Add(domain.PaymentDeadlineHours * time.Hour)
			err = s.bookingRepo.Confirm(txCtx, id, now, deadline)
			booking.ConfirmedAt = &now
			booking.PaymentDeadline = &deadline
		case domain.StatusCancelled:
			err = s.bookingRepo.Cancel(txCtx, id, now)
			booking.CancelledAt = &now
		default:
			err = s.bookingRepo.UpdateStatus(txCtx, id, next)
		}
		if err != nil {
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		booking.Status = next
		updated = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: %v", err)
		} else {
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
		}
		return nil, err
	}

	s.publish(ctx, "UpdateStatus", statusEvent(next), updated, now)

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, next)
	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование по запросу владельца или администратора
func (s *Service) Cancel(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%d by user=%d", id, principal.UserID)

	now := s.timeProvider.Now()
	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if !principal.Owns(booking) && !principal.IsAdmin() {
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrCannotCancel, booking.Status)
		}

		if err := s.bookingRepo.Cancel(txCtx, id, now); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		cancelled = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Cancel: %v", err)
		} else {
			s.logger.Warn("Cancel: booking id=%d: %v", id, err)
		}
		return nil, err
	}

	s.publish(ctx, "Cancel", domain.EventBookingCancelled, cancelled, now)

	s.logger.Info("Cancel: booking id=%d cancelled", id)
	return models.FromDomainBooking(cancelled), nil
}

// CanAcceptPayment сообщает, можно ли сейчас принять оплату по бронированию
func (s *Service) CanAcceptPayment(ctx context.Context, id int64, principal domain.Principal) (*models.PaymentEligibilityResponse, error) {
	booking, err := s.getBooking(ctx, "CanAcceptPayment", id)
	if err != nil {
		return nil, err
	}

	if !principal.Owns(booking) && !principal.IsStaff() {
		s.logger.Warn("CanAcceptPayment: access denied for user=%d to booking id=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.NewPaymentEligibility(booking, s.timeProvider.Now()), nil
}

// ExpireUnpaid отменяет подтвержденные неоплаченные бронирования с истекшим сроком оплаты
func (s *Service) ExpireUnpaid(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	expired, err := s.bookingRepo.CancelExpiredUnpaid(ctx, now)
	if err != nil {
		s.logger.Error("ExpireUnpaid: repository error: %v", err)
		return 0, fmt.Errorf("%w: ExpireUnpaid - repository error: %w", ErrInternal, err)
	}

	for _, booking := range expired {
		s.publish(ctx, "ExpireUnpaid", domain.EventBookingExpired, booking, now)
	}

	s.metrics.ObserveExpired(len(expired))
	if len(expired) > 0 {
		s.logger.Info("ExpireUnpaid: cancelled %d bookings past payment deadline", len(expired))
	}

	return len(expired), nil
}

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, method, err)
	}
	return booking, nil
}

func (s *Service) publish(ctx context.Context, method string, eventType domain.BookingEventType, b *domain.Booking, at time.Time) {
	if err := s.publisher.Publish(ctx, domain.NewBookingEvent(eventType, b, at)); err != nil {
		s.logger.Error("%s: failed to publish %s for booking id=%d: %v", method, eventType, b.ID, err)
	}
}

func statusEvent(status domain.BookingStatus) domain.BookingEventType {
	switch status {
	case domain.StatusConfirmed:
		return domain.EventBookingConfirmed
	case domain.StatusCompleted:
		return domain.EventBookingCompleted
	default:
		return domain.EventBookingCancelled
	}
}
