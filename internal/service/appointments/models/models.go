package models

import (
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение записей для панели администратора
type ListAppointmentsRequest struct {
	AdminID  string     `json:"-"`
	From     *time.Time `json:"from,omitempty"`   // Начало периода (включительно)
	To       *time.Time `json:"to,omitempty"`     // Конец периода (не включительно)
	Status   *string    `json:"status,omitempty"` // confirmed | cancelled
	Upcoming bool       `json:"upcoming,omitempty"`
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	AdminID       string `json:"-"`
	AppointmentID int64  `json:"appointmentId"`
}

// Response модели

// AppointmentResponse запись клиента
type AppointmentResponse struct {
	ID          int64      `json:"id"`
	ServiceID   int64      `json:"serviceId"`
	ServiceName string     `json:"serviceName,omitempty"`
	ClientName  string     `json:"clientName"`
	ClientPhone string     `json:"clientPhone"`
	Notes       *string    `json:"notes,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     time.Time  `json:"endTime"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:          a.ID,
		ServiceID:   a.ServiceID,
		ServiceName: a.ServiceName,
		ClientName:  a.ClientName,
		ClientPhone: a.ClientPhone,
		Notes:       a.Notes,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		Status:      string(a.Status),
		CancelledAt: a.CancelledAt,
		CreatedAt:   a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appts)),
	}
	for _, a := range appts {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}
	resp.Total = len(resp.Appointments)
	return resp
}
