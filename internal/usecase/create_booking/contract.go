package create_booking

import (
	"context"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/integrations/whatsappbot"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetRuleByWeekday(ctx context.Context, day time.Weekday) (*domain.WeeklyHourRule, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	// GetByFilter внутри транзакции блокирует записи одного дня (FOR UPDATE)
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки подтверждения клиенту
type Notifier interface {
	SendConfirmation(ctx context.Context, confirmation whatsappbot.Confirmation) error
}

// Metrics интерфейс для записи метрик
type Metrics interface {
	IncBooking(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
