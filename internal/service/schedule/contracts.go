package schedule

import (
	"context"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListRules(ctx context.Context) ([]*domain.WeeklyHourRule, error)
	ReplaceRules(ctx context.Context, rules []*domain.WeeklyHourRule) error
	ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
