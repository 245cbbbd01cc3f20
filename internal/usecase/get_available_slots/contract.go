package get_available_slots

import (
	"context"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// GetRuleByWeekday возвращает правило дня недели или ErrRuleNotFound
	GetRuleByWeekday(ctx context.Context, day time.Weekday) (*domain.WeeklyHourRule, error)
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// Metrics интерфейс для записи метрик
type Metrics interface {
	ObserveAvailableSlots(count int, dayClosed bool)
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
