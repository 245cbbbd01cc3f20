package availability

import "errors"

var (
	// ErrConfig возвращается, когда правило расписания нельзя интерпретировать
	// (невалидное HH:MM, start >= end, перерыв вне рабочего окна). День считается недоступным.
	ErrConfig = errors.New("availability: invalid schedule configuration")

	// ErrInput возвращается при некорректных входных данных запроса
	ErrInput = errors.New("availability: invalid input")

	// ErrInvalidDuration длительность услуги не положительная
	ErrInvalidDuration = errors.New("service duration must be positive")

	// ErrDateInPast дата раньше сегодняшнего дня
	ErrDateInPast = errors.New("date is in the past")

	// ErrDateTooFarInFuture дата дальше горизонта бронирования
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrRuleWeekdayMismatch правило относится к другому дню недели
	ErrRuleWeekdayMismatch = errors.New("rule weekday does not match date")
)
