package workwindows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
)

type memoryWindows struct {
	items []*domain.WorkWindow
}

func (m *memoryWindows) Create(_ context.Context, w *domain.WorkWindow) (*domain.WorkWindow, error) {
	w.ID = int64(len(m.items) + 1)
	m.items = append(m.items, w)
	return w, nil
}

func (m *memoryWindows) GetByEmployeeAndDateRange(_ context.Context, employeeID int64, from, to time.Time) ([]*domain.WorkWindow, error) {
	result := make([]*domain.WorkWindow, 0)
	for _, w := range m.items {
		if w.EmployeeID == employeeID && !w.WorkDate.Before(from) && !w.WorkDate.After(to) {
			result = append(result, w)
		}
	}
	return result, nil
}

type stubUsers map[int64]*domain.User

func (s stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type serialTx struct{ calls int }

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *memoryWindows, *serialTx) {
	windows := &memoryWindows{}
	tx := &serialTx{}
	users := stubUsers{
		1: {ID: 1, FirstName: "Ana", Enabled: true, Roles: []domain.Role{domain.RoleEmployee}},
		2: {ID: 2, FirstName: "Carla", Enabled: true, Roles: []domain.Role{domain.RoleUser}},
		3: {ID: 3, FirstName: "Dan", Enabled: true, Roles: []domain.Role{domain.RoleEmployee}},
	}
	return NewService(windows, users, tx, nopLogger{}), windows, tx
}

func window(employeeID int64, date, start, end string) *models.CreateWindowRequest {
	return &models.CreateWindowRequest{EmployeeID: employeeID, WorkDate: date, StartTime: start, EndTime: end}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("adjacent windows are allowed", func(t *testing.T) {
		svc, windows, tx := newService()

		first, err := svc.Create(ctx, window(1, "2024-07-01", "09:00", "12:00"))
		require.NoError(t, err)
		assert.Equal(t, "2024-07-01", first.WorkDate)
		assert.Equal(t, "12:00", first.EndTime)

		_, err = svc.Create(ctx, window(1, "2024-07-01", "12:00", "17:00"))
		require.NoError(t, err)
		assert.Len(t, windows.items, 2)
		assert.Equal(t, 2, tx.calls)
	})

	t.Run("overlap is refused", func(t *testing.T) {
		svc, windows, _ := newService()

		_, err := svc.Create(ctx, window(1, "2024-07-01", "09:00", "12:00"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, window(1, "2024-07-01", "11:30", "14:00"))
		assert.ErrorIs(t, err, ErrWindowOverlap)
		assert.Len(t, windows.items, 1)
	})

	t.Run("other employee or day does not conflict", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.Create(ctx, window(1, "2024-07-01", "09:00", "12:00"))
		require.NoError(t, err)
		_, err = svc.Create(ctx, window(3, "2024-07-01", "09:00", "12:00"))
		assert.NoError(t, err)
		_, err = svc.Create(ctx, window(1, "2024-07-02", "09:00", "12:00"))
		assert.NoError(t, err)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, _, tx := newService()

		for _, req := range []*models.CreateWindowRequest{
			window(1, "01.07.2024", "09:00", "12:00"),
			window(1, "2024-07-01", "12:00", "09:00"),
			window(1, "2024-07-01", "9am", "12:00"),
			window(0, "2024-07-01", "09:00", "12:00"),
		} {
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
		assert.Zero(t, tx.calls)
	})

	t.Run("only employees get windows", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.Create(ctx, window(2, "2024-07-01", "09:00", "12:00"))
		assert.ErrorIs(t, err, ErrEmployeeNotFound)

		_, err = svc.Create(ctx, window(42, "2024-07-01", "09:00", "12:00"))
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})
}

func TestService_ListForEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	_, err := svc.Create(ctx, window(1, "2024-07-01", "09:00", "12:00"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, window(1, "2024-07-10", "09:00", "12:00"))
	require.NoError(t, err)

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 7, 5, 0, 0, 0, 0, time.Local)

	resp, err := svc.ListForEmployee(ctx, &models.ListWindowsRequest{EmployeeID: 1, From: from, To: to})
	require.NoError(t, err)
	require.Len(t, resp.Windows, 1)
	assert.Equal(t, "2024-07-01", resp.Windows[0].WorkDate)

	_, err = svc.ListForEmployee(ctx, &models.ListWindowsRequest{EmployeeID: 1, From: to, To: from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListForEmployee(ctx, &models.ListWindowsRequest{EmployeeID: 1, From: from, To: from.AddDate(1, 0, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
