package create_work_window

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows/models"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

type mockService struct{ mock.Mock }

func (m *mockService) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.WindowResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	body := `{"employeeId":3,"workDate":"2024-07-01","startTime":"08:00","endTime":"16:00"}`
	expected := &models.CreateWindowRequest{EmployeeID: 3, WorkDate: "2024-07-01", StartTime: "08:00", EndTime: "16:00"}

	call := func(svc *mockService) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/work-windows", strings.NewReader(body)))
		return rec
	}

	t.Run("created", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Create", mock.Anything, expected).Return(&models.WindowResponse{ID: 1, EmployeeID: 3}, nil).Once()
		assert.Equal(t, http.StatusCreated, call(svc).Code)
		svc.AssertExpectations(t)
	})

	t.Run("overlap", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Create", mock.Anything, expected).Return(nil, fmt.Errorf("%w: 07:00-09:00", workwindows.ErrWindowOverlap))
		assert.Equal(t, http.StatusConflict, call(svc).Code)
	})

	t.Run("concurrent modification", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Create", mock.Anything, expected).Return(nil, txmanager.ErrConcurrencyConflict)
		assert.Equal(t, http.StatusConflict, call(svc).Code)
	})

	t.Run("not an employee", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Create", mock.Anything, expected).Return(nil, workwindows.ErrEmployeeNotFound)
		assert.Equal(t, http.StatusNotFound, call(svc).Code)
	})
}
