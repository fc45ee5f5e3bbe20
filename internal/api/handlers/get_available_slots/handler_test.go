package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func request(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/activities/1/available-slots?"+query, nil)
	return mux.SetURLVars(req, map[string]string{"activityId": "1"})
}

func TestHandler_Handle(t *testing.T) {
	t.Run("grid", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getAvailableSlots.Request) bool {
			return r.ActivityID == 1 && r.Participants != nil && *r.Participants == 3 &&
				r.Date.Format(domain.DateFormat) == "2024-07-01"
		})).Return(&getAvailableSlots.Response{
			ActivityID:   1,
			Date:         time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local),
			Participants: 3,
			Slots: []domain.TimeSlot{
				{StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("11:00"), Available: true},
				{StartTime: types.MustTimeString("09:30"), EndTime: types.MustTimeString("11:30"), Available: false},
			},
		}, nil).Once()

		rec := httptest.NewRecorder()
		NewHandler(uc, nopLogger{}).Handle(rec, request("date=2024-07-01&participants=3"))

		require.Equal(t, http.StatusOK, rec.Code)
		var body SlotsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 1, body.AvailableCount)
		require.Len(t, body.Slots, 2)
		assert.False(t, body.Slots[1].Available)
		uc.AssertExpectations(t)
	})

	t.Run("missing date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&mockUseCase{}, nopLogger{}).Handle(rec, request(""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inactive activity", func(t *testing.T) {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, getAvailableSlots.ErrActivityNotFound)

		rec := httptest.NewRecorder()
		NewHandler(uc, nopLogger{}).Handle(rec, request("date=2024-07-01"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
