package create_booking

import (
	"time"

	createBooking "github.com/haderrenteria13/ronald-barber/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	StartTime   string  `json:"startTime"` // RFC3339, "2026-03-10T09:45:00-05:00"
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	ServiceID        int64   `json:"serviceId"`
	ServiceName      string  `json:"serviceName"`
	ServicePrice     float64 `json:"servicePrice"`
	ClientName       string  `json:"clientName"`
	ClientPhone      string  `json:"clientPhone"`
	Notes            *string `json:"notes,omitempty"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Status           string  `json:"status"`
	NotificationSent bool    `json:"notificationSent"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:   r.ServiceID,
		StartTime:   startTime,
		ClientName:  r.ClientName,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		ServiceID:        resp.ServiceID,
		ServiceName:      resp.ServiceName,
		ServicePrice:     resp.ServicePrice,
		ClientName:       resp.ClientName,
		ClientPhone:      resp.ClientPhone,
		Notes:            resp.Notes,
		StartTime:        resp.StartTime.Format(time.RFC3339),
		EndTime:          resp.EndTime.Format(time.RFC3339),
		Status:           resp.Status,
		NotificationSent: resp.NotificationSent,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
