package appointments

import (
	"context"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
