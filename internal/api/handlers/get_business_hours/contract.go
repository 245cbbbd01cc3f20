package get_business_hours

import (
	"context"

	"github.com/haderrenteria13/ronald-barber/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
