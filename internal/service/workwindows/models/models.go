package models

import (
	"time"

	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
)

// Request модели

// CreateWindowRequest запрос на создание рабочего окна
type CreateWindowRequest struct {
	EmployeeID int64  `json:"employeeId"`
	WorkDate   string `json:"workDate"`  // "2025-10-15"
	StartTime  string `json:"startTime"` // "09:00"
	EndTime    string `json:"endTime"`   // "17:00"
}

// ListWindowsRequest запрос рабочих окон сотрудника за период
type ListWindowsRequest struct {
	EmployeeID int64
	From       time.Time
	To         time.Time
}

// Response модели

// WindowResponse ответ с данными рабочего окна
type WindowResponse struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	WorkDate   string    `json:"workDate"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WindowListResponse ответ со списком рабочих окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.WorkWindow) *WindowResponse {
	if w == nil {
		return nil
	}
	return &WindowResponse{
		ID:         w.ID,
		EmployeeID: w.EmployeeID,
		WorkDate:   w.WorkDate.Format(domain.DateFormat),
		StartTime:  w.StartTime.String(),
		EndTime:    w.EndTime.String(),
		CreatedAt:  w.CreatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.WorkWindow) *WindowListResponse {
	resp := &WindowListResponse{Windows: make([]WindowResponse, 0, len(windows))}
	for _, w := range windows {
		if item := FromDomainWindow(w); item != nil {
			resp.Windows = append(resp.Windows, *item)
		}
	}
	return resp
}
