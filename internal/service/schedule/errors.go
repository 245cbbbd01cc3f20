package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrDuplicateWeekday возвращается, когда в неделе два правила для одного дня
	ErrDuplicateWeekday = errors.New("schedule: duplicate weekday")

	// ErrDateAlreadyBlocked возвращается при повторной блокировке даты
	ErrDateAlreadyBlocked = errors.New("schedule: date is already blocked")

	// ErrBlockedDateNotFound возвращается, когда дата не заблокирована
	ErrBlockedDateNotFound = errors.New("schedule: blocked date not found")

	// ErrDateInPast возвращается при попытке заблокировать прошедшую дату
	ErrDateInPast = errors.New("schedule: date is in the past")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
