package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// Исходы назначения, передаваемые в Recorder
const (
	OutcomeAssigned    = "assigned"
	OutcomeNoEmployees = "no_employees"
	OutcomeExhausted   = "exhausted"
)

// Engine решает, какой сотрудник может взять бронирование.
// Engine только читает хранилище; внутри транзакции чтения бронирований блокируют строки.
type Engine struct {
	bookingRepo  BookingRepository
	activityRepo ActivityRepository
	employees    EmployeeDirectory
	recorder     Recorder
	logger       Logger
}

// NewEngine создает движок назначения
func NewEngine(
	bookingRepo BookingRepository,
	activityRepo ActivityRepository,
	employees EmployeeDirectory,
	recorder Recorder,
	logger Logger,
) *Engine {
	return &Engine{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		employees:    employees,
		recorder:     recorder,
		logger:       logger,
	}
}

// LoadDay загружает неотмененные бронирования сотрудника на дату и их активности
func (e *Engine) LoadDay(ctx context.Context, employeeID int64, date time.Time) (*EmployeeDay, error) {
	bookings, err := e.bookingRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: employee=%d date=%s: %w", ErrLoadDay, employeeID, date.Format(domain.DateFormat), err)
	}

	ids := make([]int64, 0, len(bookings))
	seen := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seen[b.ActivityID]; ok {
			continue
		}
		seen[b.ActivityID] = struct{}{}
		ids = append(ids, b.ActivityID)
	}

	activities, err := e.activityRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: activities of employee=%d: %w", ErrLoadDay, employeeID, err)
	}

	return NewEmployeeDay(employeeID, date, bookings, activities), nil
}

// Assess возвращает вердикт для кандидата на сотрудника
func (e *Engine) Assess(ctx context.Context, employeeID int64, c Candidate) (Verdict, error) {
	if err := c.validate(); err != nil {
		return "", err
	}

	day, err := e.LoadDay(ctx, employeeID, c.Date)
	if err != nil {
		return "", err
	}

	return day.Assess(c), nil
}

// CanEmployeeHandle может ли сотрудник дополнительно взять кандидата
func (e *Engine) CanEmployeeHandle(ctx context.Context, employeeID int64, c Candidate) (bool, error) {
	verdict, err := e.Assess(ctx, employeeID, c)
	if err != nil {
		return false, err
	}
	return verdict.OK(), nil
}

// EligibleEmployees включенные пользователи с ролью сотрудника в порядке хранилища
func (e *Engine) EligibleEmployees(ctx context.Context) ([]*domain.User, error) {
	employees, err := e.employees.GetByRole(ctx, domain.RoleEmployee, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadEmployees, err)
	}
	return employees, nil
}

// FindAvailableEmployee первый в порядке хранилища сотрудник, который может взять кандидата.
// ErrNoEmployeeAvailable означает штатный отказ, повторять запрос не нужно.
func (e *Engine) FindAvailableEmployee(ctx context.Context, c Candidate) (*domain.User, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	employees, err := e.EligibleEmployees(ctx)
	if err != nil {
		return nil, err
	}

	if len(employees) == 0 {
		e.recorder.ObserveAssignment(OutcomeNoEmployees)
		e.logger.Warn("FindAvailableEmployee: no enabled employees")
		return nil, ErrNoEmployeeAvailable
	}

	for _, employee := range employees {
		day, err := e.LoadDay(ctx, employee.ID, c.Date)
		if err != nil {
			return nil, err
		}

		verdict := day.Assess(c)
		if verdict.OK() {
			e.recorder.ObserveAssignment(OutcomeAssigned)
			e.logger.Debug("FindAvailableEmployee: employee=%d takes activity=%d %s %s-%s (%s)",
				employee.ID, c.Activity.ID, c.Date.Format(domain.DateFormat), c.StartTime, c.EndTime, verdict)
			return employee, nil
		}

		e.logger.Debug("FindAvailableEmployee: employee=%d rejected: %s", employee.ID, verdict)
	}

	e.recorder.ObserveAssignment(OutcomeExhausted)
	return nil, ErrNoEmployeeAvailable
}

// LoadDays загружает снимки дня для списка сотрудников, сохраняя порядок
func (e *Engine) LoadDays(ctx context.Context, employees []*domain.User, date time.Time) ([]*EmployeeDay, error) {
	days := make([]*EmployeeDay, 0, len(employees))
	for _, employee := range employees {
		day, err := e.LoadDay(ctx, employee.ID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
