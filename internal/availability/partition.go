package availability

import (
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// partition делит слоты на утро (час < 12) и вторую половину дня по локальному времени loc
func partition(slots []time.Time, loc *time.Location) domain.DaySlots {
	result := domain.DaySlots{
		Morning:   make([]time.Time, 0),
		Afternoon: make([]time.Time, 0),
	}

	for _, s := range slots {
		if s.In(loc).Hour() < domain.AfternoonStartHour {
			result.Morning = append(result.Morning, s)
		} else {
			result.Afternoon = append(result.Afternoon, s)
		}
	}

	return result
}
