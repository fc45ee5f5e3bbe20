package workwindows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

// maxListRangeDays ограничение периода выборки окон
const maxListRangeDays = 93

// Service сервис для работы с рабочими окнами сотрудников
type Service struct {
	windowRepo WorkWindowRepository
	userRepo   UserRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса рабочих окон
func NewService(
	windowRepo WorkWindowRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		windowRepo: windowRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Create создает рабочее окно
// Окна одного сотрудника на одну дату не пересекаются: проверка и вставка идут в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: work window for employee=%d on %s %s-%s",
		req.EmployeeID, req.WorkDate, req.StartTime, req.EndTime)

	// 1. Валидируем входные данные
	window, err := parseWindow(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем сотрудника
	employee, err := s.userRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Create: employee id=%d not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("Create: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Create - user repository error: %w", ErrInternal, err)
	}
	if !employee.HasRole(domain.RoleEmployee) {
		s.logger.Warn("Create: user id=%d is not an employee", req.EmployeeID)
		return nil, ErrEmployeeNotFound
	}

	// 3. Проверка пересечений и вставка
	var created *domain.WorkWindow
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.windowRepo.GetByEmployeeAndDateRange(txCtx, window.EmployeeID, window.WorkDate, window.WorkDate)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}

		for _, other := range existing {
			if window.Overlaps(other) {
				return fmt.Errorf("%w: %s-%s intersects window id=%d %s-%s",
					ErrWindowOverlap, window.StartTime, window.EndTime, other.ID, other.StartTime, other.EndTime)
			}
		}

		created, err = s.windowRepo.Create(txCtx, window)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWindowOverlap) {
			s.logger.Warn("Create: %v", err)
		} else {
			s.logger.Error("Create: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Create: successfully created work window id=%d", created.ID)
	return models.FromDomainWindow(created), nil
}

// ListForEmployee возвращает рабочие окна сотрудника за период [from, to]
func (s *Service) ListForEmployee(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("ListForEmployee: employee=%d, from=%s, to=%s",
		req.EmployeeID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}
	if req.To.Sub(req.From) > maxListRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range is longer than %d days", ErrInvalidInput, maxListRangeDays)
	}

	windows, err := s.windowRepo.GetByEmployeeAndDateRange(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		s.logger.Error("ListForEmployee: repository error for employee=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: ListForEmployee - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainWindowList(windows), nil
}

func parseWindow(req *models.CreateWindowRequest) (*domain.WorkWindow, error) {
	if req.EmployeeID <= 0 {
		return nil, fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.WorkDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: workDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return &domain.WorkWindow{
		EmployeeID: req.EmployeeID,
		WorkDate:   date,
		StartTime:  start,
		EndTime:    end,
	}, nil
}
