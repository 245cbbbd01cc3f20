package domain

import "time"

// StartOfDay обнуляет время, сохраняя часовой пояс
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now))
}
