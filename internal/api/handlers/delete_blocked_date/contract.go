package delete_blocked_date

import (
	"context"
	"time"
)

type ScheduleService interface {
	UnblockDate(ctx context.Context, date time.Time, adminID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
