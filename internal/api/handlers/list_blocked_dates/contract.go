package list_blocked_dates

import (
	"context"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBlockedDates(ctx context.Context, from *time.Time) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
