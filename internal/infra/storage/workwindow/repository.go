package workwindow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"employee_id",
	"work_date",
	"start_time",
	"end_time",
	"created_at",
}

// Repository репозиторий рабочих окон сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих окон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет рабочее окно
// Проверка пересечения с другими окнами сотрудника выполняется вызывающей стороной в транзакции
func (r *Repository) Create(ctx context.Context, window *domain.WorkWindow) (*domain.WorkWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("work_windows").
		Columns("employee_id", "work_date", "start_time", "end_time").
		Values(window.EmployeeID, window.WorkDate.Format(domain.DateFormat), window.StartTime, window.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	window.CreatedAt = createdAt.Time

	return window, nil
}

// GetByDate получает рабочие окна всех сотрудников на дату
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.WorkWindow, error) {
	return r.GetInDateRange(ctx, date, date)
}

// GetInDateRange получает рабочие окна всех сотрудников за период [from, to]
func (r *Repository) GetInDateRange(ctx context.Context, from, to time.Time) ([]*domain.WorkWindow, error) {
	query, args, err := psqlbuilder.Select(windowColumns...).
		From("work_windows").
		Where(squirrel.GtOrEq{"work_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"work_date": to.Format(domain.DateFormat)}).
		OrderBy("work_date ASC", "employee_id ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetInDateRange - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetInDateRange", query, args)
}

// GetByEmployeeAndDateRange получает рабочие окна сотрудника за период [from, to]
// Внутри пишущей транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetByEmployeeAndDateRange(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.WorkWindow, error) {
	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("work_windows").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.GtOrEq{"work_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"work_date": to.Format(domain.DateFormat)}).
		OrderBy("work_date ASC", "start_time ASC")

	if dbmetrics.CanLockRows(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployeeAndDateRange - build select query: %w", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByEmployeeAndDateRange", query, args)
}

func (r *Repository) query(ctx context.Context, method, query string, args []interface{}) ([]*domain.WorkWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	windows := make([]*domain.WorkWindow, 0)
	for rows.Next() {
		var (
			window    domain.WorkWindow
			createdAt sql.NullTime
		)
		if err := rows.Scan(
			&window.ID,
			&window.EmployeeID,
			&window.WorkDate,
			&window.StartTime,
			&window.EndTime,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		window.CreatedAt = createdAt.Time
		windows = append(windows, &window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}

	return windows, nil
}
