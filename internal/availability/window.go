package availability

import (
	"fmt"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// window рабочее окно конкретного дня в абсолютном времени
type window struct {
	open       time.Time
	close      time.Time
	breakStart time.Time
	breakEnd   time.Time
	hasBreak   bool
}

// resolveWindow переводит правило дня недели в моменты времени для date.
// Любая ошибка интерпретации правила возвращается как ErrConfig.
func resolveWindow(rule *domain.WeeklyHourRule, date time.Time) (window, error) {
	if err := rule.Validate(); err != nil {
		return window{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var w window
	var err error

	if w.open, err = rule.StartTime.On(date); err != nil {
		return window{}, fmt.Errorf("%w: start_time: %v", ErrConfig, err)
	}
	if w.close, err = rule.EndTime.On(date); err != nil {
		return window{}, fmt.Errorf("%w: end_time: %v", ErrConfig, err)
	}

	if !rule.HasBreak() {
		return w, nil
	}

	if w.breakStart, err = rule.BreakStart.On(date); err != nil {
		return window{}, fmt.Errorf("%w: break_start: %v", ErrConfig, err)
	}
	if w.breakEnd, err = rule.BreakEnd.On(date); err != nil {
		return window{}, fmt.Errorf("%w: break_end: %v", ErrConfig, err)
	}
	w.hasBreak = true

	return w, nil
}
