package create_booking

import "time"

// Request модель запроса на создание записи
type Request struct {
	ServiceID   int64     `validate:"required,gt=0"`
	StartTime   time.Time `validate:"required"`
	ClientName  string    `validate:"required,max=100"`
	ClientPhone string    `validate:"required,phone10"` // 10 цифр, разделители допускаются
	Notes       *string   `validate:"omitempty,max=500"`
}

// Response модель ответа с созданной записью
type Response struct {
	ID               int64
	ServiceID        int64
	ServiceName      string
	ServicePrice     float64
	ClientName       string
	ClientPhone      string
	Notes            *string
	StartTime        time.Time
	EndTime          time.Time
	Status           string
	NotificationSent bool // подтверждение в WhatsApp доставлено боту
	CreatedAt        time.Time
}
