package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings/models"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, principal)
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	owner := domain.Principal{UserID: 7, Roles: []domain.Role{domain.RoleUser}}

	request := func(id string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
		req = mux.SetURLVars(req, map[string]string{"bookingId": id})
		return req.WithContext(middleware.WithPrincipal(req.Context(), owner))
	}

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "found", status: http.StatusOK},
		{name: "not found", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "foreign booking", err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "storage failure", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{}
			var resp *models.BookingResponse
			if tc.err == nil {
				resp = &models.BookingResponse{ID: 5, Status: "PENDING"}
			}
			svc.On("GetByID", mock.Anything, int64(5), owner).Return(resp, tc.err).Once()

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, request("5"))

			assert.Equal(t, tc.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}

	t.Run("bad id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&mockService{}, nopLogger{}).Handle(rec, request("abc"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
