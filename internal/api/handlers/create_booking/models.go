package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model авторизованного клиента
type CreateBookingRequest struct {
	ActivityID   int64   `json:"activityId"`
	BookingDate  string  `json:"bookingDate"` // "2025-10-15"
	StartTime    string  `json:"startTime"`   // "10:00"
	Participants int     `json:"participants"`
	Notes        *string `json:"notes,omitempty"`
}

// CreateGuestBookingRequest HTTP request model гостя без аккаунта
type CreateGuestBookingRequest struct {
	CreateBookingRequest
	GuestName  string  `json:"guestName"`
	GuestPhone string  `json:"guestPhone"`
	GuestEmail *string `json:"guestEmail,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	models.BookingResponse
	ActivityName string `json:"activityName"`
	EmployeeName string `json:"employeeName"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	req, err := r.toUseCaseRequest()
	if err != nil {
		return nil, err
	}
	req.CustomerID = &customerID
	return req, nil
}

// ToUseCaseRequest конвертирует HTTP запрос гостя в модель use case
func (r *CreateGuestBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req, err := r.CreateBookingRequest.toUseCaseRequest()
	if err != nil {
		return nil, err
	}
	req.Guest = &createBooking.GuestContact{
		Name:  r.GuestName,
		Phone: r.GuestPhone,
		Email: r.GuestEmail,
	}
	return req, nil
}

func (r *CreateBookingRequest) toUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		ActivityID:   r.ActivityID,
		Date:         bookingDate,
		StartTime:    startTime,
		Participants: r.Participants,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		ActivityName:    resp.ActivityName,
		EmployeeName:    resp.EmployeeName,
	}
}
