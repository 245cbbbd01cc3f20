package availability

import (
	"slices"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// gridCandidates регулярная сетка: от открытия с шагом step, пока t < close.
// Кандидаты, которые не помещаются до закрытия, отсекает валидатор.
func gridCandidates(w window, step time.Duration) []time.Time {
	candidates := make([]time.Time, 0, int(w.close.Sub(w.open)/step)+1)
	for t := w.open; t.Before(w.close); t = t.Add(step) {
		candidates = append(candidates, t)
	}
	return candidates
}

// packingCandidates плотная упаковка: конец каждой подтвержденной записи внутри окна
// становится кандидатом, чтобы следующая запись могла начаться сразу после нее
// (запись 09:00-09:45 дает кандидата 09:45, которого нет в сетке).
func packingCandidates(w window, appointments []domain.Appointment) []time.Time {
	candidates := make([]time.Time, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsConfirmed() {
			continue
		}
		if appt.EndTime.After(w.close) || appt.EndTime.Before(w.open) {
			continue
		}
		candidates = append(candidates, appt.EndTime)
	}
	return candidates
}

// mergeCandidates объединяет наборы кандидатов, сортирует по возрастанию и убирает дубликаты
func mergeCandidates(sets ...[]time.Time) []time.Time {
	total := 0
	for _, set := range sets {
		total += len(set)
	}

	merged := make([]time.Time, 0, total)
	for _, set := range sets {
		merged = append(merged, set...)
	}

	slices.SortFunc(merged, func(a, b time.Time) int {
		return a.Compare(b)
	})

	return slices.CompactFunc(merged, func(a, b time.Time) bool {
		return a.Equal(b)
	})
}
