package check_employee_swap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	checkEmployeeSwap "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/check_employee_swap"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/ptr"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *checkEmployeeSwap.Request) (*domain.SwapAssessment, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*domain.SwapAssessment)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(bookingID, employeeID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID+"/swap-check/"+employeeID, nil)
	return mux.SetURLVars(req, map[string]string{"bookingId": bookingID, "employeeId": employeeID})
}

func TestHandler_Handle(t *testing.T) {
	t.Run("swap possible", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, &checkEmployeeSwap.Request{BookingID: 4, EmployeeID: 9}).Return(&domain.SwapAssessment{
			BookingID:            4,
			ConflictingBookingID: ptr.Ptr(int64(6)),
			ConflictCount:        1,
			StartTime:            types.MustTimeString("09:00"),
			EndTime:              types.MustTimeString("11:00"),
			SwapNeeded:           true,
			CanSwap:              true,
			Reason:               domain.SwapReasonPossible,
		}, nil).Once()

		rec := httptest.NewRecorder()
		NewHandler(uc, nopLogger{}).Handle(rec, request("4", "9"))

		require.Equal(t, http.StatusOK, rec.Code)
		var body SwapCheckResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.True(t, body.CanSwap)
		assert.Equal(t, int64(6), *body.ConflictingBookingID)
		assert.Equal(t, "09:00", body.StartTime)
		assert.Equal(t, domain.SwapReasonPossible, body.Reason)
	})

	t.Run("unknown employee", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, checkEmployeeSwap.ErrEmployeeNotFound)

		rec := httptest.NewRecorder()
		NewHandler(uc, nopLogger{}).Handle(rec, request("4", "99"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad employee id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&mockUseCase{}, nopLogger{}).Handle(rec, request("4", "-1"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
