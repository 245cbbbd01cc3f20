package availability

import (
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

type interval struct {
	start time.Time
	end   time.Time
}

// overlaps полуоткрытые интервалы [start, end): касание концами не пересечение
func (i interval) overlaps(start, end time.Time) bool {
	return start.Before(i.end) && end.After(i.start)
}

// slotValidator отбрасывает кандидатов, которые нельзя забронировать
type slotValidator struct {
	window   window
	duration time.Duration
	now      time.Time
	busy     []interval
}

func newSlotValidator(w window, duration time.Duration, now time.Time, appointments []domain.Appointment) slotValidator {
	busy := make([]interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsConfirmed() {
			continue
		}
		busy = append(busy, interval{start: appt.StartTime, end: appt.EndTime})
	}

	return slotValidator{
		window:   w,
		duration: duration,
		now:      now,
		busy:     busy,
	}
}

// accepts проверяет кандидата start с концом start + duration
func (v slotValidator) accepts(start time.Time) bool {
	end := start.Add(v.duration)

	if start.Before(v.now) {
		return false
	}
	if start.Before(v.window.open) || end.After(v.window.close) {
		return false
	}
	if v.window.hasBreak {
		pause := interval{start: v.window.breakStart, end: v.window.breakEnd}
		if pause.overlaps(start, end) {
			return false
		}
	}
	for _, b := range v.busy {
		if b.overlaps(start, end) {
			return false
		}
	}

	return true
}

// filter возвращает принятых кандидатов, сохраняя порядок
func (v slotValidator) filter(candidates []time.Time) []time.Time {
	valid := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if v.accepts(c) {
			valid = append(valid, c)
		}
	}
	return valid
}
