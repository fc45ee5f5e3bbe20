package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

// bookingColumns порядок колонок должен совпадать с scanBooking
var bookingColumns = []string{
	"id",
	"activity_id",
	"customer_id",
	"guest_name",
	"guest_phone",
	"guest_email",
	"employee_id",
	"booking_date",
	"start_time",
	"end_time",
	"participants",
	"status",
	"notes",
	"payment_status",
	"total_price",
	"deposit_amount",
	"paid_amount",
	"remaining_amount",
	"confirmed_at",
	"payment_deadline",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"activity_id",
			"customer_id",
			"guest_name",
			"guest_phone",
			"guest_email",
			"employee_id",
			"booking_date",
			"start_time",
			"end_time",
			"participants",
			"status",
			"notes",
			"payment_status",
			"total_price",
			"deposit_amount",
			"paid_amount",
			"remaining_amount",
		).
		Values(
			booking.ActivityID,
			booking.CustomerID,
			booking.GuestName,
			booking.GuestPhone,
			booking.GuestEmail,
			booking.EmployeeID,
			dateParam(booking.BookingDate),
			booking.StartTime,
			booking.EndTime,
			booking.Participants,
			booking.Status,
			booking.Notes,
			booking.PaymentStatus,
			booking.TotalPrice,
			booking.DepositAmount,
			booking.PaidAmount,
			booking.RemainingAmount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри пишущей транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает бронирования клиента, новые первыми
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC", "start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByCustomerID", query, args)
}

// GetByEmployeeAndDate получает неотмененные бронирования сотрудника на дату
// Внутри пишущей транзакции строки блокируются (FOR UPDATE), чтобы решение о загрузке
// сотрудника и запись нового бронирования были согласованы
func (r *Repository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Eq{"booking_date": dateParam(date)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndDate - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByEmployeeAndDate", query, args)
}

// GetByActivityAndDate получает все бронирования активности на дату (включая отмененные)
func (r *Repository) GetByActivityAndDate(ctx context.Context, activityID int64, date time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"activity_id": activityID}).
		Where(squirrel.Eq{"booking_date": dateParam(date)}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByActivityAndDate - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByActivityAndDate", query, args)
}

// GetByDateRangeExcludingStatus получает бронирования за диапазон дат [from, to] без указанного статуса
func (r *Repository) GetByDateRangeExcludingStatus(ctx context.Context, from, to time.Time, status domain.BookingStatus) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.GtOrEq{"booking_date": dateParam(from)}).
		Where(squirrel.LtOrEq{"booking_date": dateParam(to)}).
		Where(squirrel.NotEq{"status": status}).
		OrderBy("booking_date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateRangeExcludingStatus - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByDateRangeExcludingStatus", query, args)
}

// UpdateEmployee назначает бронированию сотрудника
func (r *Repository) UpdateEmployee(ctx context.Context, id int64, employeeID int64) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("employee_id", employeeID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateEmployee - build update query: %w", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "UpdateEmployee", query, args)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "UpdateStatus", query, args)
}

// Confirm подтверждает бронирование и выставляет срок оплаты
func (r *Repository) Confirm(ctx context.Context, id int64, confirmedAt, paymentDeadline time.Time) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusConfirmed).
		Set("confirmed_at", confirmedAt).
		Set("payment_deadline", paymentDeadline).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %w", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "Confirm", query, args)
}

// Cancel отменяет бронирование
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %w", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "Cancel", query, args)
}

// CancelExpiredUnpaid отменяет подтвержденные неоплаченные бронирования с истекшим сроком оплаты
// Возвращает отмененные бронирования
func (r *Repository) CancelExpiredUnpaid(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", now).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Eq{"payment_status": domain.PaymentUnpaid}).
		Where(squirrel.Lt{"payment_deadline": now}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CancelExpiredUnpaid - build update query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "CancelExpiredUnpaid", query, args)
}

func (r *Repository) query(ctx context.Context, method, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) execSingle(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ActivityID,
		&booking.CustomerID,
		&booking.GuestName,
		&booking.GuestPhone,
		&booking.GuestEmail,
		&booking.EmployeeID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Participants,
		&booking.Status,
		&booking.Notes,
		&booking.PaymentStatus,
		&booking.TotalPrice,
		&booking.DepositAmount,
		&booking.PaidAmount,
		&booking.RemainingAmount,
		&booking.ConfirmedAt,
		&booking.PaymentDeadline,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func dateParam(t time.Time) string {
	return t.Format(domain.DateFormat)
}
