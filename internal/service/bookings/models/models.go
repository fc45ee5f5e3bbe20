package models

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64   `json:"id"`
	ActivityID   int64   `json:"activityId"`
	CustomerID   *int64  `json:"customerId,omitempty"`
	GuestName    *string `json:"guestName,omitempty"`
	GuestPhone   *string `json:"guestPhone,omitempty"`
	GuestEmail   *string `json:"guestEmail,omitempty"`
	IsGuest      bool    `json:"isGuestBooking"`
	EmployeeID   *int64  `json:"employeeId,omitempty"`
	BookingDate  string  `json:"bookingDate"` // "2025-10-15"
	StartTime    string  `json:"startTime"`   // "10:00"
	EndTime      string  `json:"endTime"`
	Participants int     `json:"participants"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`

	PaymentStatus   string  `json:"paymentStatus"`
	TotalPrice      float64 `json:"totalPrice"`
	DepositAmount   float64 `json:"depositAmount"`
	PaidAmount      float64 `json:"paidAmount"`
	RemainingAmount float64 `json:"remainingAmount"`
	ConfirmedAt     *string `json:"confirmedAt,omitempty"`     // ISO 8601
	PaymentDeadline *string `json:"paymentDeadline,omitempty"` // ISO 8601
	CancelledAt     *string `json:"cancelledAt,omitempty"`     // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// PaymentEligibilityResponse можно ли сейчас принять оплату по бронированию
type PaymentEligibilityResponse struct {
	BookingID        int64   `json:"bookingId"`
	CanAcceptPayment bool    `json:"canAcceptPayment"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	RemainingAmount  float64 `json:"remainingAmount"`
	PaymentDeadline  *string `json:"paymentDeadline,omitempty"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		ActivityID:      b.ActivityID,
		CustomerID:      b.CustomerID,
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		IsGuest:         b.IsGuest(),
		EmployeeID:      b.EmployeeID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		Participants:    b.Participants,
		Status:          string(b.Status),
		Notes:           b.Notes,
		PaymentStatus:   string(b.PaymentStatus),
		TotalPrice:      b.TotalPrice,
		DepositAmount:   b.DepositAmount,
		PaidAmount:      b.PaidAmount,
		RemainingAmount: b.RemainingAmount,
		ConfirmedAt:     formatTime(b.ConfirmedAt),
		PaymentDeadline: formatTime(b.PaymentDeadline),
		CancelledAt:     formatTime(b.CancelledAt),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// NewPaymentEligibility собирает ответ о возможности оплаты
func NewPaymentEligibility(b *domain.Booking, now time.Time) *PaymentEligibilityResponse {
	return &PaymentEligibilityResponse{
		BookingID:        b.ID,
		CanAcceptPayment: b.CanAcceptPayment(now),
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		RemainingAmount:  b.RemainingAmount,
		PaymentDeadline:  formatTime(b.PaymentDeadline),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
